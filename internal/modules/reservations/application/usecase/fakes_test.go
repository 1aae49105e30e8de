package usecase

import (
	"context"
	"errors"
	"sync"

	customers "mesaYaConsole/internal/modules/customers/domain"
	"mesaYaConsole/internal/modules/reservations/domain"
	tables "mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/shared/events"
)

type fakeReservations struct {
	mu           sync.Mutex
	stored       map[int64]domain.Reservation
	created      []domain.CreateReservationBody
	createKeys   []string
	createErr    error
	patches      []domain.ReservationPatch
	cancelled    []int64
	deleted      []int64
	availability []domain.Availability
	availErr     error
	availCalls   int
}

func (f *fakeReservations) List(context.Context) ([]domain.Reservation, error) {
	return nil, nil
}

func (f *fakeReservations) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	reservation, ok := f.stored[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &reservation, nil
}

func (f *fakeReservations) ListByDay(context.Context, string) ([]domain.Reservation, error) {
	return nil, nil
}

func (f *fakeReservations) Availability(context.Context, string, string) ([]domain.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availCalls++
	return f.availability, f.availErr
}

func (f *fakeReservations) Create(_ context.Context, body domain.CreateReservationBody, key string) (*domain.Reservation, error) {
	f.created = append(f.created, body)
	f.createKeys = append(f.createKeys, key)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Reservation{ID: 100, DateTime: body.DateTime, PartySize: body.PartySize, TableNumber: body.TableNumber, CustomerID: body.CustomerID, State: domain.ReservationStatusPending}, nil
}

func (f *fakeReservations) Update(_ context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	f.patches = append(f.patches, patch)
	reservation := f.stored[id]
	if patch.State != nil {
		reservation.State = *patch.State
	}
	return &reservation, nil
}

func (f *fakeReservations) Cancel(_ context.Context, id int64) (*domain.Reservation, error) {
	f.cancelled = append(f.cancelled, id)
	return &domain.Reservation{ID: id}, nil
}

func (f *fakeReservations) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCustomers struct {
	byEmail    map[string]customers.Customer
	lookupErr  error
	lookups    []string
	created    []customers.CustomerInput
	createKeys []string
	createErr  error
}

func (f *fakeCustomers) List(context.Context) ([]customers.Customer, error) {
	return nil, nil
}

func (f *fakeCustomers) Get(context.Context, int64) (*customers.Customer, error) {
	return nil, customers.ErrCustomerNotFound
}

func (f *fakeCustomers) History(context.Context, int64) ([]domain.Reservation, error) {
	return nil, nil
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*customers.Customer, error) {
	f.lookups = append(f.lookups, email)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	customer, ok := f.byEmail[email]
	if !ok {
		return nil, customers.ErrCustomerNotFound
	}
	return &customer, nil
}

func (f *fakeCustomers) SearchByName(context.Context, string) ([]customers.Customer, error) {
	return nil, nil
}

func (f *fakeCustomers) Create(_ context.Context, input customers.CustomerInput, key string) (*customers.Customer, error) {
	f.created = append(f.created, input)
	f.createKeys = append(f.createKeys, key)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &customers.Customer{ID: 50, FirstName: input.FirstName, LastName: input.LastName, Email: input.Email, Phone: input.Phone, Active: input.Active}, nil
}

func (f *fakeCustomers) Update(context.Context, int64, customers.CustomerPatch) (*customers.Customer, error) {
	return nil, errors.New("not used")
}

func (f *fakeCustomers) Delete(context.Context, int64) error {
	return nil
}

type fakeTables struct {
	mu        sync.Mutex
	active    []tables.Table
	listErr   error
	updates   []int
	patches   []tables.TablePatch
	updateErr error
}

func (f *fakeTables) List(context.Context, *bool) ([]tables.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]tables.Table(nil), f.active...), nil
}

func (f *fakeTables) Get(context.Context, int) (*tables.Table, error) {
	return nil, tables.ErrTableNotFound
}

func (f *fakeTables) ListByCapacity(context.Context, int) ([]tables.Table, error) {
	return nil, nil
}

func (f *fakeTables) Create(context.Context, tables.TableInput) (*tables.Table, error) {
	return nil, errors.New("not used")
}

func (f *fakeTables) Update(_ context.Context, number int, patch tables.TablePatch) (*tables.Table, error) {
	f.updates = append(f.updates, number)
	f.patches = append(f.patches, patch)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &tables.Table{Number: number}, nil
}

func (f *fakeTables) Delete(context.Context, int) error {
	return nil
}

type recordingMetrics struct {
	bookings    []string
	followUps   []string
	transitions []string
}

func (m *recordingMetrics) IncBooking(outcome string) {
	m.bookings = append(m.bookings, outcome)
}

func (m *recordingMetrics) IncFollowUpFailure(step string) {
	m.followUps = append(m.followUps, step)
}

func (m *recordingMetrics) IncTransition(target, outcome string) {
	m.transitions = append(m.transitions, target+":"+outcome)
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []events.Change
}

func (r *recordingNotifier) Notify(_ context.Context, change events.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
}
