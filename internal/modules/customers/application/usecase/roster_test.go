package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaConsole/internal/modules/customers/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/shared/events"
	"mesaYaConsole/internal/shared/validation"
)

type fakeCustomers struct {
	customers []domain.Customer
	history   []reservations.Reservation
	listErr   error
	created   []domain.CustomerInput
	deleted   []int64
}

func (f *fakeCustomers) List(context.Context) ([]domain.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Customer(nil), f.customers...), nil
}

func (f *fakeCustomers) Get(_ context.Context, id int64) (*domain.Customer, error) {
	for _, customer := range f.customers {
		if customer.ID == id {
			found := customer
			return &found, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (f *fakeCustomers) History(context.Context, int64) ([]reservations.Reservation, error) {
	return f.history, nil
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, customer := range f.customers {
		if customer.Email == email {
			found := customer
			return &found, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (f *fakeCustomers) SearchByName(_ context.Context, name string) ([]domain.Customer, error) {
	return domain.Search(f.customers, name), nil
}

func (f *fakeCustomers) Create(_ context.Context, input domain.CustomerInput, _ string) (*domain.Customer, error) {
	f.created = append(f.created, input)
	customer := domain.Customer{ID: int64(len(f.customers) + 1), FirstName: input.FirstName, LastName: input.LastName, Email: input.Email, Phone: input.Phone, Active: input.Active}
	f.customers = append(f.customers, customer)
	return &customer, nil
}

func (f *fakeCustomers) Update(_ context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	customer, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if patch.Phone != nil {
		customer.Phone = *patch.Phone
	}
	return customer, nil
}

func (f *fakeCustomers) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReservations struct {
	today   []reservations.Reservation
	dayErr  error
	dayArgs []string
}

func (f *fakeReservations) List(context.Context) ([]reservations.Reservation, error) {
	return f.today, nil
}

func (f *fakeReservations) Get(context.Context, int64) (*reservations.Reservation, error) {
	return nil, reservations.ErrReservationNotFound
}

func (f *fakeReservations) ListByDay(_ context.Context, date string) ([]reservations.Reservation, error) {
	f.dayArgs = append(f.dayArgs, date)
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	return f.today, nil
}

func (f *fakeReservations) Availability(context.Context, string, string) ([]reservations.Availability, error) {
	return nil, nil
}

func (f *fakeReservations) Create(context.Context, reservations.CreateReservationBody, string) (*reservations.Reservation, error) {
	return nil, errors.New("not used")
}

func (f *fakeReservations) Update(context.Context, int64, reservations.ReservationPatch) (*reservations.Reservation, error) {
	return nil, errors.New("not used")
}

func (f *fakeReservations) Cancel(context.Context, int64) (*reservations.Reservation, error) {
	return nil, errors.New("not used")
}

func (f *fakeReservations) Delete(context.Context, int64) error {
	return nil
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

func roster() (*fakeCustomers, *fakeReservations) {
	customers := &fakeCustomers{customers: []domain.Customer{
		{ID: 1, FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com", Phone: "555-0101", Active: true},
		{ID: 2, FirstName: "Luis", LastName: "Gómez", Email: "luis@example.com", Phone: "555-0202", Active: true},
		{ID: 3, FirstName: "Marta", LastName: "Ruiz", Email: "marta@example.com", Phone: "555-0303", Active: true},
	}}
	today := &fakeReservations{today: []reservations.Reservation{
		{ID: 10, CustomerID: 1, DateTime: "2024-05-01T19:00:00Z", State: reservations.ReservationStatusPending, TableNumber: 3, PartySize: 2},
		{ID: 11, CustomerID: 1, DateTime: "2024-05-01T21:00:00Z", State: reservations.ReservationStatusConfirmed, TableNumber: 5, PartySize: 2},
		{ID: 12, CustomerID: 2, DateTime: "2024-05-01T13:00:00Z", State: reservations.ReservationStatusCompleted, TableNumber: 1, PartySize: 4},
	}}
	return customers, today
}

func TestLoadJoinsActiveReservationsOfToday(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	uc := NewRosterUseCase(customers, today, nil)

	view, err := uc.Load(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, view.Entries, 3)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 1, view.WithReservations)
	assert.Equal(t, []string{""}, today.dayArgs)

	require.NotNil(t, view.Entries[0].ActiveReservation)
	assert.Equal(t, int64(10), view.Entries[0].ActiveReservation.ID)
	assert.Nil(t, view.Entries[1].ActiveReservation, "completed reservations are not active")
	assert.Nil(t, view.Entries[2].ActiveReservation)
}

func TestLoadAppliesSearch(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	uc := NewRosterUseCase(customers, today, nil)

	view, err := uc.Load(context.Background(), "0202")
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Luis", view.Entries[0].Customer.FirstName)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 1, view.Matched)
}

func TestLoadFailsWhenEitherFetchFails(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	today.dayErr = errors.New("boom")
	uc := NewRosterUseCase(customers, today, nil)

	_, err := uc.Load(context.Background(), "")
	require.Error(t, err)

	customers, today = roster()
	customers.listErr = errors.New("down")
	_, err = NewRosterUseCase(customers, today, nil).Load(context.Background(), "")
	require.Error(t, err)
}

func TestDetailCombinesCustomerAndHistory(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	customers.history = today.today
	uc := NewRosterUseCase(customers, today, nil)

	detail, err := uc.Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Luis", detail.Customer.FirstName)
	assert.Len(t, detail.History, 3)

	_, err = uc.Detail(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateValidatesBeforeCallingBackend(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	notifier := &recordingNotifier{}
	uc := NewRosterUseCase(customers, today, notifier)

	_, err := uc.Create(context.Background(), domain.CustomerInput{FirstName: "  ", Phone: "1"})
	require.ErrorIs(t, err, validation.ErrInvalid)
	fields, ok := validation.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "first_name")
	assert.Empty(t, customers.created)
	assert.Empty(t, notifier.changes)

	created, err := uc.Create(context.Background(), domain.CustomerInput{FirstName: " Rosa ", LastName: "Díaz", Phone: "555", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Rosa", created.FirstName)
	require.Len(t, notifier.changes, 1)
	assert.Equal(t, events.Change{Entity: "customers", Action: "created", ResourceID: "4", Actor: "anonymous"}, notifier.changes[0])
}

func TestUpdateAndDeleteNotify(t *testing.T) {
	t.Parallel()
	customers, today := roster()
	notifier := &recordingNotifier{}
	uc := NewRosterUseCase(customers, today, notifier)

	phone := "555-9999"
	updated, err := uc.Update(context.Background(), 3, domain.CustomerPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	require.NoError(t, uc.Delete(context.Background(), 3))
	assert.Equal(t, []int64{3}, customers.deleted)
	require.Len(t, notifier.changes, 2)
	assert.Equal(t, "deleted", notifier.changes[1].Action)
}
