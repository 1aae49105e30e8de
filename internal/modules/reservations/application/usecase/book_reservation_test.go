package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customers "mesaYaConsole/internal/modules/customers/domain"
	"mesaYaConsole/internal/modules/reservations/domain"
	tables "mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/validation"
)

type bookingFixture struct {
	reservations *fakeReservations
	customers    *fakeCustomers
	tables       *fakeTables
	metrics      *recordingMetrics
	notifier     *recordingNotifier
	uc           *BookReservationUseCase
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		reservations: &fakeReservations{},
		customers:    &fakeCustomers{byEmail: map[string]customers.Customer{"a@b.com": {ID: 7, FirstName: "Ana", Email: "a@b.com"}}},
		tables:       &fakeTables{active: []tables.Table{{Number: 3, Capacity: 4, Active: true}, {Number: 5, Capacity: 6, Active: true}}},
		metrics:      &recordingMetrics{},
		notifier:     &recordingNotifier{},
	}
	f.uc = NewBookReservationUseCase(f.reservations, f.customers, f.tables, f.notifier, f.metrics)
	f.uc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	ids := 0
	f.uc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return f
}

func validForm() domain.BookingForm {
	return domain.BookingForm{
		SubmissionID: "sub-1",
		FirstName:    "Carla",
		LastName:     "Warnes",
		Phone:        "555-0100",
		Date:         "2025-03-10",
		Time:         "18:00",
		PartySize:    4,
		TableNumber:  3,
	}
}

func TestBookCombinesDateAndTime(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()

	result, err := f.uc.Book(context.Background(), validForm())
	require.NoError(t, err)
	require.Len(t, f.reservations.created, 1)
	body := f.reservations.created[0]
	assert.Equal(t, "2025-03-10T18:00:00", body.DateTime)
	assert.Equal(t, 4, body.PartySize)
	assert.Equal(t, 3, body.TableNumber)
	assert.Equal(t, int64(50), body.CustomerID)
	assert.Equal(t, BookingSuccessMessage, result.Message)
	assert.Equal(t, []string{"created"}, f.metrics.bookings)
}

func TestBookWithoutEmailCreatesCustomerWithoutLookup(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()

	result, err := f.uc.Book(context.Background(), validForm())
	require.NoError(t, err)
	assert.Empty(t, f.customers.lookups)
	require.Len(t, f.customers.created, 1)
	assert.Equal(t, "cliente_1700000000123@restaurante.com", f.customers.created[0].Email)
	assert.True(t, f.customers.created[0].Active)
	assert.True(t, result.CustomerCreated)
	assert.Equal(t, []string{"sub-1:customer"}, f.customers.createKeys)
	assert.Equal(t, []string{"sub-1:reservation"}, f.reservations.createKeys)
}

func TestBookWithExistingEmailReusesCustomer(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	form := validForm()
	form.Email = "a@b.com"

	result, err := f.uc.Book(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com"}, f.customers.lookups)
	assert.Empty(t, f.customers.created)
	require.Len(t, f.reservations.created, 1)
	assert.Equal(t, int64(7), f.reservations.created[0].CustomerID)
	assert.False(t, result.CustomerCreated)
}

func TestBookWithUnknownEmailCreatesCustomerWithThatEmail(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	form := validForm()
	form.Email = "nueva@b.com"

	_, err := f.uc.Book(context.Background(), form)
	require.NoError(t, err)
	assert.Len(t, f.customers.lookups, 1)
	require.Len(t, f.customers.created, 1)
	assert.Equal(t, "nueva@b.com", f.customers.created[0].Email)
}

func TestBookLookupFailureAborts(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	f.customers.lookupErr = fmt.Errorf("GET /customers/email/{email}: %w", restapi.ErrUnavailable)
	form := validForm()
	form.Email = "a@b.com"

	_, err := f.uc.Book(context.Background(), form)
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, StepCustomerLookup, bookingErr.Step)
	assert.Empty(t, f.customers.created)
	assert.Empty(t, f.reservations.created)
	assert.Equal(t, []string{"failed"}, f.metrics.bookings)
}

func TestBookMalformedTimeAbortsBeforeNetwork(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	form := validForm()
	form.Time = "18"

	_, err := f.uc.Book(context.Background(), form)
	require.ErrorIs(t, err, domain.ErrMalformedTime)
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, MalformedTimeMessage, bookingErr.Message)
	assert.Empty(t, f.customers.lookups)
	assert.Empty(t, f.customers.created)
	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.tables.updates)
}

func TestBookValidationErrorsArePerField(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()

	_, err := f.uc.Book(context.Background(), domain.BookingForm{Time: "18:00", PartySize: 11})
	require.ErrorIs(t, err, validation.ErrInvalid)
	fields, ok := validation.Fields(err)
	require.True(t, ok)
	for _, field := range []string{"first_name", "last_name", "phone", "date", "party_size", "table_number"} {
		assert.Contains(t, fields, field)
	}
	assert.Empty(t, f.customers.created)
	assert.Equal(t, []string{"invalid"}, f.metrics.bookings)
}

func TestBookDeactivatesTableExactlyOnce(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()

	result, err := f.uc.Book(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, []int{3}, f.tables.updates)
	require.NotNil(t, f.tables.patches[0].Active)
	assert.False(t, *f.tables.patches[0].Active)
	assert.Empty(t, result.FollowUps)
	assert.Len(t, result.Tables, 2)
	assert.Equal(t, "id-1", result.Form.SubmissionID)
	assert.Empty(t, result.Form.FirstName)
}

func TestBookTableDeactivationFailureKeepsSuccess(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	f.tables.updateErr = &restapi.APIError{Status: http.StatusInternalServerError, Message: "db down"}

	result, err := f.uc.Book(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, BookingSuccessMessage, result.Message)
	require.Len(t, result.FollowUps, 1)
	assert.Equal(t, StepDeactivateTable, result.FollowUps[0].Step)
	assert.Equal(t, "db down", result.FollowUps[0].Message)
	assert.Equal(t, []string{StepDeactivateTable}, f.metrics.followUps)
	assert.Len(t, f.tables.updates, 1)
}

func TestBookReservationFailureMessagePreference(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "backend message", err: &restapi.APIError{Status: 409, Message: "La mesa ya está reservada", Detail: "Conflict"}, expected: "La mesa ya está reservada"},
		{name: "backend error field", err: &restapi.APIError{Status: 400, Detail: "Bad Request"}, expected: "Bad Request"},
		{name: "raw text", err: errors.New("connection reset"), expected: "connection reset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture()
			f.reservations.createErr = tc.err

			_, err := f.uc.Book(context.Background(), validForm())
			var bookingErr *BookingError
			require.ErrorAs(t, err, &bookingErr)
			assert.Equal(t, StepReservationCreate, bookingErr.Step)
			assert.Equal(t, tc.expected, bookingErr.Message)
			assert.Empty(t, f.tables.updates)
		})
	}
}

func TestBookGeneratesSubmissionIDWhenMissing(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()
	form := validForm()
	form.SubmissionID = ""

	result, err := f.uc.Book(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "id-1", result.SubmissionID)
	assert.Equal(t, []string{"id-1:reservation"}, f.reservations.createKeys)
	assert.Equal(t, "id-2", result.Form.SubmissionID)
}

func TestBookNotifiesConsoles(t *testing.T) {
	t.Parallel()
	f := newBookingFixture()

	_, err := f.uc.Book(context.Background(), validForm())
	require.NoError(t, err)
	entities := make([]string, 0, len(f.notifier.changes))
	for _, change := range f.notifier.changes {
		entities = append(entities, change.Entity)
	}
	assert.ElementsMatch(t, []string{"reservations", "tables", "customers"}, entities)
}
