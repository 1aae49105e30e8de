package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"mesaYaConsole/internal/modules/reservations/application/port"
	"mesaYaConsole/internal/modules/reservations/domain"
	tableport "mesaYaConsole/internal/modules/tables/application/port"
	tables "mesaYaConsole/internal/modules/tables/domain"
)

const (
	OpeningHoursNotice    = "Horario de atención: Las reservas están disponibles de 8:00 AM a 10:00 PM"
	BackendDownBannerText = "No se pudo conectar con el servidor. Verifique que el backend esté iniciado."
)

// FormQuery is the current state of the Reservar form fields that drive
// the table dropdown.
type FormQuery struct {
	Date      string
	Time      string
	PartySize int
}

type Banner struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// FormView is everything the Reservar screen needs to render.
type FormView struct {
	Notice              string           `json:"notice"`
	Banner              *Banner          `json:"banner,omitempty"`
	SubmissionID        string           `json:"submission_id"`
	TimeSlots           []string         `json:"time_slots"`
	PartySizes          []int            `json:"party_sizes"`
	AvailabilityChecked bool             `json:"availability_checked"`
	Selection           domain.Selection `json:"selection"`
}

// BookingFormUseCase computes the Reservar dropdown from the active tables
// and, once date and time are picked, the backend availability query.
type BookingFormUseCase struct {
	reservations port.ReservationGateway
	tables       tableport.TableGateway
	newID        func() string
}

func NewBookingFormUseCase(reservations port.ReservationGateway, tables tableport.TableGateway, newID func() string) *BookingFormUseCase {
	return &BookingFormUseCase{reservations: reservations, tables: tables, newID: newID}
}

// Load never fails because of the backend: an unreachable backend becomes a
// banner and a failed availability query falls back to the active tables.
// Only a cancelled request is returned as an error.
func (uc *BookingFormUseCase) Load(ctx context.Context, q FormQuery) (*FormView, error) {
	view := &FormView{
		Notice:     OpeningHoursNotice,
		TimeSlots:  domain.TimeSlots(),
		PartySizes: domain.PartySizes(),
	}
	if uc.newID != nil {
		view.SubmissionID = uc.newID()
	}

	date := strings.TrimSpace(q.Date)
	timeOfDay := strings.TrimSpace(q.Time)
	wantAvailability := date != "" && timeOfDay != ""
	if wantAvailability {
		if _, err := domain.NormalizeTime(timeOfDay); err != nil {
			slog.Debug("availability skipped", slog.String("time", timeOfDay), slog.Any("error", err))
			wantAvailability = false
		}
	}

	var (
		active          []tables.Table
		availability    []domain.Availability
		tablesErr       error
		availabilityErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		flag := true
		active, tablesErr = uc.tables.List(ctx, &flag)
		return nil
	})
	if wantAvailability {
		g.Go(func() error {
			availability, availabilityErr = uc.reservations.Availability(ctx, date, timeOfDay)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tablesErr != nil {
		slog.Error("booking form tables load failed", slog.Any("error", tablesErr))
		view.Banner = &Banner{Level: "error", Message: BackendDownBannerText}
		active = nil
	}
	if availabilityErr != nil {
		if !errors.Is(availabilityErr, context.Canceled) {
			slog.Warn("availability query failed, offering active tables", slog.String("date", date), slog.String("time", timeOfDay), slog.Any("error", availabilityErr))
		}
		wantAvailability = false
	}

	view.AvailabilityChecked = wantAvailability
	view.Selection = domain.SelectTables(domain.SelectionInput{
		ActiveTables:     active,
		Availability:     availability,
		DateTimeSelected: wantAvailability,
		PartySize:        q.PartySize,
	})
	return view, nil
}
