package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	customerport "mesaYaConsole/internal/modules/customers/application/port"
	customers "mesaYaConsole/internal/modules/customers/domain"
	"mesaYaConsole/internal/modules/reservations/application/port"
	"mesaYaConsole/internal/modules/reservations/domain"
	tableport "mesaYaConsole/internal/modules/tables/application/port"
	tables "mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/auth"
	"mesaYaConsole/internal/shared/events"
)

const (
	BookingSuccessMessage = "¡Reserva creada exitosamente! La mesa ha sido marcada como ocupada."
	BookingFailureMessage = "Error al crear la reserva. Por favor intente nuevamente."
	MalformedTimeMessage  = "Formato de hora inválido"
)

// Workflow steps, used in errors, follow-ups and metrics.
const (
	StepValidate          = "validate"
	StepCustomerLookup    = "customer_lookup"
	StepCustomerCreate    = "customer_create"
	StepReservationCreate = "reservation_create"
	StepDeactivateTable   = "deactivate_table"
	StepReloadTables      = "reload_tables"
)

// BookingError is a failed submission. Message is what the form shows.
type BookingError struct {
	Step    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// FollowUp records a best-effort step that failed after the reservation existed.
type FollowUp struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// BookingResult is returned once the reservation was created. Form is the
// reset form, carrying a fresh submission id for the next booking.
type BookingResult struct {
	Message         string              `json:"message"`
	SubmissionID    string              `json:"submission_id"`
	Reservation     *domain.Reservation `json:"reservation"`
	Customer        *customers.Customer `json:"customer"`
	CustomerCreated bool                `json:"customer_created"`
	FollowUps       []FollowUp          `json:"follow_ups"`
	Form            domain.BookingForm  `json:"form"`
	Tables          []tables.Table      `json:"tables"`
}

// BookReservationUseCase runs the Reservar submission: resolve or create the
// customer, create the reservation, then mark the table occupied.
type BookReservationUseCase struct {
	reservations port.ReservationGateway
	customers    customerport.CustomerGateway
	tables       tableport.TableGateway
	notifier     events.Notifier
	metrics      port.WorkflowMetrics
	now          func() time.Time
	newID        func() string
}

func NewBookReservationUseCase(
	reservations port.ReservationGateway,
	customers customerport.CustomerGateway,
	tables tableport.TableGateway,
	notifier events.Notifier,
	metrics port.WorkflowMetrics,
) *BookReservationUseCase {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &BookReservationUseCase{
		reservations: reservations,
		customers:    customers,
		tables:       tables,
		notifier:     events.OrNop(notifier),
		metrics:      metrics,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// NewSubmissionID returns an id for a fresh booking form.
func (uc *BookReservationUseCase) NewSubmissionID() string {
	return uc.newID()
}

// Book validates the form before any backend call. Errors are either
// validation failures or *BookingError.
func (uc *BookReservationUseCase) Book(ctx context.Context, form domain.BookingForm) (*BookingResult, error) {
	form = form.Normalized()
	if err := form.Validate(); err != nil {
		uc.metrics.IncBooking("invalid")
		return nil, err
	}
	dateTime, err := domain.CombineDateTime(form.Date, form.Time)
	if err != nil {
		uc.metrics.IncBooking("invalid")
		return nil, &BookingError{Step: StepValidate, Message: MalformedTimeMessage, Err: err}
	}

	submissionID := form.SubmissionID
	if submissionID == "" {
		submissionID = uc.newID()
	}
	logger := slog.With(slog.String("submissionId", submissionID), slog.String("actor", auth.Actor(restapi.BearerToken(ctx))))

	customer, created, err := uc.resolveCustomer(ctx, form, submissionID)
	if err != nil {
		return nil, uc.fail(logger, err)
	}

	body := domain.CreateReservationBody{
		DateTime:    dateTime,
		PartySize:   form.PartySize,
		TableNumber: form.TableNumber,
		CustomerID:  customer.ID,
		Notes:       form.Notes,
	}
	reservation, err := uc.reservations.Create(ctx, body, submissionID+":reservation")
	if err != nil {
		return nil, uc.fail(logger, &BookingError{Step: StepReservationCreate, Err: err})
	}
	logger.Info("reservation created",
		slog.Int64("reservationId", reservation.ID),
		slog.Int64("customerId", customer.ID),
		slog.Int("tableNumber", form.TableNumber),
		slog.String("dateTime", dateTime),
	)

	result := &BookingResult{
		Message:         BookingSuccessMessage,
		SubmissionID:    submissionID,
		Reservation:     reservation,
		Customer:        customer,
		CustomerCreated: created,
		FollowUps:       []FollowUp{},
		Form:            domain.BookingForm{SubmissionID: uc.newID()},
		Tables:          []tables.Table{},
	}

	if _, err := uc.tables.Update(ctx, form.TableNumber, tables.SetActive(false)); err != nil {
		logger.Warn("table not marked occupied", slog.Int("tableNumber", form.TableNumber), slog.Any("error", err))
		uc.metrics.IncFollowUpFailure(StepDeactivateTable)
		result.FollowUps = append(result.FollowUps, FollowUp{
			Step:    StepDeactivateTable,
			Message: restapi.UserMessage(err, "No se pudo marcar la mesa como ocupada"),
		})
	}

	active := true
	if loaded, err := uc.tables.List(ctx, &active); err != nil {
		logger.Warn("table reload after booking failed", slog.Any("error", err))
		uc.metrics.IncFollowUpFailure(StepReloadTables)
		result.FollowUps = append(result.FollowUps, FollowUp{Step: StepReloadTables, Message: restapi.UserMessage(err, "No se pudieron recargar las mesas")})
	} else {
		result.Tables = loaded
	}

	uc.metrics.IncBooking("created")
	actor := auth.Actor(restapi.BearerToken(ctx))
	uc.notifier.Notify(ctx, events.Change{Entity: "reservations", Action: "created", ResourceID: strconv.FormatInt(reservation.ID, 10), Actor: actor})
	uc.notifier.Notify(ctx, events.Change{Entity: "tables", Action: "updated", ResourceID: strconv.Itoa(form.TableNumber), Actor: actor})
	if created {
		uc.notifier.Notify(ctx, events.Change{Entity: "customers", Action: "created", ResourceID: strconv.FormatInt(customer.ID, 10), Actor: actor})
	}
	return result, nil
}

// resolveCustomer looks the customer up by email and creates it when the
// email is blank or unknown. Any other lookup failure aborts the booking.
func (uc *BookReservationUseCase) resolveCustomer(ctx context.Context, form domain.BookingForm, submissionID string) (*customers.Customer, bool, error) {
	if form.Email != "" {
		found, err := uc.customers.FindByEmail(ctx, form.Email)
		if err == nil {
			return found, false, nil
		}
		if !errors.Is(err, customers.ErrCustomerNotFound) {
			return nil, false, &BookingError{Step: StepCustomerLookup, Err: err}
		}
	}

	email := form.Email
	if email == "" {
		email = customers.SyntheticEmail(uc.now())
	}
	input := customers.CustomerInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     email,
		Phone:     form.Phone,
		Active:    true,
	}
	created, err := uc.customers.Create(ctx, input, submissionID+":customer")
	if err != nil {
		return nil, false, &BookingError{Step: StepCustomerCreate, Err: err}
	}
	return created, true, nil
}

func (uc *BookReservationUseCase) fail(logger *slog.Logger, err error) error {
	var bookingErr *BookingError
	if errors.As(err, &bookingErr) && bookingErr.Message == "" {
		bookingErr.Message = restapi.UserMessage(bookingErr.Err, BookingFailureMessage)
	}
	step := "unknown"
	if bookingErr != nil {
		step = bookingErr.Step
	}
	logger.Error("booking failed", slog.String("step", step), slog.Any("error", err))
	uc.metrics.IncBooking("failed")
	return err
}
