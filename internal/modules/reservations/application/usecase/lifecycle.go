package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"mesaYaConsole/internal/modules/reservations/application/port"
	"mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/auth"
	"mesaYaConsole/internal/shared/events"
)

// LifecycleUseCase applies dashboard actions to a reservation. The current
// state is re-read from the backend and checked against the transition table
// before anything is written.
type LifecycleUseCase struct {
	reservations port.ReservationGateway
	notifier     events.Notifier
	metrics      port.WorkflowMetrics
}

func NewLifecycleUseCase(reservations port.ReservationGateway, notifier events.Notifier, metrics port.WorkflowMetrics) *LifecycleUseCase {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &LifecycleUseCase{reservations: reservations, notifier: events.OrNop(notifier), metrics: metrics}
}

func (uc *LifecycleUseCase) Complete(ctx context.Context, id int64) (*domain.Reservation, error) {
	return uc.Apply(ctx, id, domain.ActionComplete, true)
}

// Cancel requires confirmed; without it nothing is sent.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, id int64, confirmed bool) (*domain.Reservation, error) {
	return uc.Apply(ctx, id, domain.ActionCancel, confirmed)
}

func (uc *LifecycleUseCase) Apply(ctx context.Context, id int64, action domain.Action, confirmed bool) (*domain.Reservation, error) {
	target := action.Target()
	if target == domain.ReservationStatusUnknown {
		return nil, domain.ErrTransitionNotAllowed
	}
	if action.RequiresConfirmation() && !confirmed {
		return nil, domain.ErrConfirmationRequired
	}

	current, err := uc.reservations.Get(ctx, id)
	if err != nil {
		uc.metrics.IncTransition(string(target), "failed")
		return nil, err
	}
	if _, err := current.State.Transition(target); err != nil {
		uc.metrics.IncTransition(string(target), "rejected")
		slog.Warn("reservation transition rejected", slog.Int64("reservationId", id), slog.String("from", string(current.State)), slog.String("to", string(target)))
		return nil, err
	}

	var updated *domain.Reservation
	switch action {
	case domain.ActionCancel:
		updated, err = uc.reservations.Cancel(ctx, id)
	default:
		updated, err = uc.reservations.Update(ctx, id, domain.StatePatch(target))
	}
	if err != nil {
		uc.metrics.IncTransition(string(target), "failed")
		if !errors.Is(err, context.Canceled) {
			slog.Error("reservation transition failed", slog.Int64("reservationId", id), slog.String("to", string(target)), slog.Any("error", err))
		}
		return nil, err
	}
	if updated.State == domain.ReservationStatusUnknown {
		updated.State = target
	}

	uc.metrics.IncTransition(string(target), "ok")
	actor := auth.Actor(restapi.BearerToken(ctx))
	slog.Info("reservation transitioned", slog.Int64("reservationId", id), slog.String("from", string(current.State)), slog.String("to", string(target)), slog.String("actor", actor))
	uc.notifier.Notify(ctx, events.Change{Entity: "reservations", Action: string(action), ResourceID: strconv.FormatInt(id, 10), Actor: actor})
	return updated, nil
}

func (uc *LifecycleUseCase) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return uc.reservations.Get(ctx, id)
}

func (uc *LifecycleUseCase) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := uc.reservations.Delete(ctx, id); err != nil {
		return err
	}
	actor := auth.Actor(restapi.BearerToken(ctx))
	slog.Info("reservation deleted", slog.Int64("reservationId", id), slog.String("actor", actor))
	uc.notifier.Notify(ctx, events.Change{Entity: "reservations", Action: "deleted", ResourceID: strconv.FormatInt(id, 10), Actor: actor})
	return nil
}
