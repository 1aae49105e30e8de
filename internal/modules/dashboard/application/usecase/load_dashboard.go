package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mesaYaConsole/internal/modules/dashboard/application/port"
	"mesaYaConsole/internal/modules/dashboard/domain"
	reservationport "mesaYaConsole/internal/modules/reservations/application/port"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	tableport "mesaYaConsole/internal/modules/tables/application/port"
	tables "mesaYaConsole/internal/modules/tables/domain"
)

// ActionResult is a lifecycle change followed by the reloaded dashboard.
// Overview is nil when the reload failed after the change went through.
type ActionResult struct {
	Reservation *reservations.Reservation `json:"reservation"`
	Overview    *domain.Overview          `json:"overview,omitempty"`
}

// Export is a rendered day export.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DashboardUseCase loads the dashboard for a date and applies the row actions.
type DashboardUseCase struct {
	reservations reservationport.ReservationGateway
	tables       tableport.TableGateway
	actions      port.ReservationActions
	exporter     port.DayExporter
	loc          *time.Location
	now          func() time.Time
}

func NewDashboardUseCase(
	reservations reservationport.ReservationGateway,
	tables tableport.TableGateway,
	actions port.ReservationActions,
	exporter port.DayExporter,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		reservations: reservations,
		tables:       tables,
		actions:      actions,
		exporter:     exporter,
		loc:          loc,
		now:          time.Now,
	}
}

// Today is the current date in the console time zone.
func (uc *DashboardUseCase) Today() string {
	return uc.now().In(uc.loc).Format(domain.DateLayout)
}

// Load fetches all reservations, all tables and the date's reservations in
// parallel. Any failure fails the whole load and cancels the other fetches.
func (uc *DashboardUseCase) Load(ctx context.Context, date string) (*domain.Overview, error) {
	if strings.TrimSpace(date) == "" {
		date = uc.Today()
	}
	selected, err := domain.ParseDate(date, uc.loc)
	if err != nil {
		return nil, err
	}
	key := selected.Format(domain.DateLayout)

	var (
		all    []reservations.Reservation
		day    []reservations.Reservation
		loaded []tables.Table
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = uc.reservations.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loaded, err = uc.tables.List(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		day, err = uc.reservations.ListByDay(gctx, key)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := domain.Build(domain.Input{
		Date:     selected,
		All:      all,
		Day:      day,
		Tables:   loaded,
		Location: uc.loc,
	})
	slog.Debug("dashboard loaded", slog.String("date", key), slog.Int("reservations", len(all)), slog.Int("today", len(day)), slog.Int("tables", len(loaded)))
	return &overview, nil
}

func (uc *DashboardUseCase) Complete(ctx context.Context, id int64, date string) (*ActionResult, error) {
	updated, err := uc.actions.Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, updated, date), nil
}

func (uc *DashboardUseCase) Cancel(ctx context.Context, id int64, confirmed bool, date string) (*ActionResult, error) {
	updated, err := uc.actions.Cancel(ctx, id, confirmed)
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, updated, date), nil
}

func (uc *DashboardUseCase) reload(ctx context.Context, updated *reservations.Reservation, date string) *ActionResult {
	result := &ActionResult{Reservation: updated}
	overview, err := uc.Load(ctx, date)
	if err != nil {
		slog.Warn("dashboard reload after action failed", slog.Int64("reservationId", updated.ID), slog.Any("error", err))
		return result
	}
	result.Overview = overview
	return result
}

// Export renders the date's reservations with the configured exporter.
func (uc *DashboardUseCase) Export(ctx context.Context, date string) (*Export, error) {
	overview, err := uc.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.Export(&buf, *overview); err != nil {
		return nil, err
	}
	return &Export{
		Filename:    "reservas_" + overview.Date + uc.exporter.Extension(),
		ContentType: uc.exporter.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
