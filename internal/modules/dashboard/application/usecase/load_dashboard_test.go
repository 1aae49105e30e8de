package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaConsole/internal/modules/dashboard/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	tables "mesaYaConsole/internal/modules/tables/domain"
)

type fakeReservations struct {
	mu      sync.Mutex
	all     []reservations.Reservation
	byDay   map[string][]reservations.Reservation
	listErr error
	days    []string
}

func (f *fakeReservations) List(ctx context.Context) ([]reservations.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all, nil
}

func (f *fakeReservations) Get(context.Context, int64) (*reservations.Reservation, error) {
	return nil, reservations.ErrReservationNotFound
}

func (f *fakeReservations) ListByDay(_ context.Context, date string) ([]reservations.Reservation, error) {
	f.mu.Lock()
	f.days = append(f.days, date)
	f.mu.Unlock()
	return f.byDay[date], nil
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

type fakeTables struct {
	all []tables.Table
}

func (f *fakeTables) List(_ context.Context, active *bool) ([]tables.Table, error) {
	if active != nil {
		return tables.ActiveTables(f.all), nil
	}
	return f.all, nil
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

func (f *fakeTables) Update(context.Context, int, tables.TablePatch) (*tables.Table, error) {
	return nil, errors.New("not used")
}

func (f *fakeTables) Delete(context.Context, int) error {
	return nil
}

type fakeActions struct {
	completed []int64
	cancelled []int64
	err       error
}

func (f *fakeActions) Complete(_ context.Context, id int64) (*reservations.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.completed = append(f.completed, id)
	return &reservations.Reservation{ID: id, State: reservations.ReservationStatusCompleted}, nil
}

func (f *fakeActions) Cancel(_ context.Context, id int64, confirmed bool) (*reservations.Reservation, error) {
	if !confirmed {
		return nil, reservations.ErrConfirmationRequired
	}
	f.cancelled = append(f.cancelled, id)
	return &reservations.Reservation{ID: id, State: reservations.ReservationStatusCancelled}, nil
}

type stubExporter struct{}

func (stubExporter) Export(w io.Writer, overview domain.Overview) error {
	_, err := io.WriteString(w, overview.Date)
	return err
}

func (stubExporter) ContentType() string { return "text/plain" }
func (stubExporter) Extension() string   { return ".txt" }

func fixture() (*fakeReservations, *fakeActions, *DashboardUseCase) {
	day := []reservations.Reservation{
		{ID: 1, DateTime: "2025-03-10T18:00:00", State: reservations.ReservationStatusPending, TableNumber: 1},
		{ID: 2, DateTime: "2025-03-10T20:00:00", State: reservations.ReservationStatusCancelled, TableNumber: 2},
	}
	reservationGateway := &fakeReservations{
		all:   append(day, reservations.Reservation{ID: 3, DateTime: "2025-03-12T13:00:00", State: reservations.ReservationStatusConfirmed, TableNumber: 4}),
		byDay: map[string][]reservations.Reservation{"2025-03-10": day},
	}
	tableGateway := &fakeTables{all: []tables.Table{
		{Number: 1, Capacity: 2, Active: true},
		{Number: 2, Capacity: 4, Active: true},
		{Number: 3, Capacity: 6, Active: false},
	}}
	actions := &fakeActions{}
	uc := NewDashboardUseCase(reservationGateway, tableGateway, actions, stubExporter{}, time.UTC)
	uc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }
	return reservationGateway, actions, uc
}

func TestLoadDefaultsToToday(t *testing.T) {
	t.Parallel()
	gateway, _, uc := fixture()

	overview, err := uc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, gateway.days)
	assert.Equal(t, "2025-03-10", overview.Date)
	assert.Equal(t, 2, overview.Stats.TodayCount)
	assert.Equal(t, 1, overview.Stats.Occupied)
	assert.Equal(t, 50.0, overview.Stats.OccupancyPercent)
	assert.Equal(t, 4.0, overview.Stats.AverageCapacity)
	assert.Len(t, overview.Calendar[1].Entries, 2)
	assert.Len(t, overview.Calendar[3].Entries, 1)
}

func TestLoadRejectsInvalidDate(t *testing.T) {
	t.Parallel()
	_, _, uc := fixture()

	_, err := uc.Load(context.Background(), "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestLoadFailsWhenAnyFetchFails(t *testing.T) {
	t.Parallel()
	gateway, _, uc := fixture()
	gateway.listErr = errors.New("boom")

	_, err := uc.Load(context.Background(), "2025-03-10")
	assert.Error(t, err)
}

func TestCompleteReloadsDashboard(t *testing.T) {
	t.Parallel()
	_, actions, uc := fixture()

	result, err := uc.Complete(context.Background(), 1, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, actions.completed)
	assert.Equal(t, reservations.ReservationStatusCompleted, result.Reservation.State)
	require.NotNil(t, result.Overview)
	assert.Equal(t, "2025-03-10", result.Overview.Date)
}

func TestCancelWithoutConfirmation(t *testing.T) {
	t.Parallel()
	_, actions, uc := fixture()

	_, err := uc.Cancel(context.Background(), 1, false, "")
	require.ErrorIs(t, err, reservations.ErrConfirmationRequired)
	assert.Empty(t, actions.cancelled)
}

func TestActionSurvivesReloadFailure(t *testing.T) {
	t.Parallel()
	gateway, _, uc := fixture()
	gateway.listErr = errors.New("boom")

	result, err := uc.Cancel(context.Background(), 1, true, "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, result.Overview)
	assert.Equal(t, int64(1), result.Reservation.ID)
}

func TestExport(t *testing.T) {
	t.Parallel()
	_, _, uc := fixture()

	export, err := uc.Export(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "reservas_2025-03-10.txt", export.Filename)
	assert.Equal(t, "text/plain", export.ContentType)
	assert.Equal(t, "2025-03-10", string(export.Body))
}
