package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"mesaYaConsole/internal/modules/customers/application/port"
	"mesaYaConsole/internal/modules/customers/domain"
	reservationport "mesaYaConsole/internal/modules/reservations/application/port"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/auth"
	"mesaYaConsole/internal/shared/events"
)

// RosterView is the Clientes screen state.
type RosterView struct {
	Search           string               `json:"search"`
	Total            int                  `json:"total"`
	Matched          int                  `json:"matched"`
	WithReservations int                  `json:"with_reservations"`
	Entries          []domain.RosterEntry `json:"entries"`
}

// CustomerDetail is a customer with its reservation history.
type CustomerDetail struct {
	Customer *domain.Customer           `json:"customer"`
	History  []reservations.Reservation `json:"history"`
}

// RosterUseCase drives the Clientes view and the customer CRUD pass-throughs.
type RosterUseCase struct {
	customers    port.CustomerGateway
	reservations reservationport.ReservationGateway
	notifier     events.Notifier
}

func NewRosterUseCase(customers port.CustomerGateway, reservations reservationport.ReservationGateway, notifier events.Notifier) *RosterUseCase {
	return &RosterUseCase{customers: customers, reservations: reservations, notifier: events.OrNop(notifier)}
}

// Load fetches the customers and today's reservations in parallel, joins
// them and applies the local search. A failure of either fetch fails the load.
func (uc *RosterUseCase) Load(ctx context.Context, search string) (*RosterView, error) {
	var (
		customers []domain.Customer
		today     []reservations.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = uc.customers.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		today, err = uc.reservations.ListByDay(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make([]domain.ReservationRef, 0, len(today))
	for _, reservation := range today {
		if reservation.State.IsActive() {
			active = append(active, toRef(reservation))
		}
	}

	entries := domain.Annotate(domain.Search(customers, search), active)
	view := &RosterView{Search: search, Total: len(customers), Matched: len(entries), Entries: entries}
	for _, entry := range entries {
		if entry.ActiveReservation != nil {
			view.WithReservations++
		}
	}
	return view, nil
}

func toRef(reservation reservations.Reservation) domain.ReservationRef {
	return domain.ReservationRef{
		ID:          reservation.ID,
		CustomerID:  reservation.CustomerID,
		DateTime:    reservation.DateTime,
		State:       string(reservation.State),
		TableNumber: reservation.TableNumber,
		PartySize:   reservation.PartySize,
	}
}

// Detail loads a customer and its history in parallel.
func (uc *RosterUseCase) Detail(ctx context.Context, id int64) (*CustomerDetail, error) {
	detail := &CustomerDetail{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customer, err := uc.customers.Get(gctx, id)
		detail.Customer = customer
		return err
	})
	g.Go(func() error {
		history, err := uc.customers.History(gctx, id)
		detail.History = history
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (uc *RosterUseCase) SearchByName(ctx context.Context, name string) ([]domain.Customer, error) {
	return uc.customers.SearchByName(ctx, name)
}

func (uc *RosterUseCase) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return uc.customers.FindByEmail(ctx, email)
}

func (uc *RosterUseCase) Create(ctx context.Context, input domain.CustomerInput) (*domain.Customer, error) {
	input = input.Normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	customer, err := uc.customers.Create(ctx, input, "")
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, "created", customer.ID)
	return customer, nil
}

func (uc *RosterUseCase) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	customer, err := uc.customers.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, "updated", id)
	return customer, nil
}

func (uc *RosterUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	uc.changed(ctx, "deleted", id)
	return nil
}

func (uc *RosterUseCase) changed(ctx context.Context, action string, id int64) {
	actor := auth.Actor(restapi.BearerToken(ctx))
	slog.Info("customer mutated", slog.String("action", action), slog.Int64("customerId", id), slog.String("actor", actor))
	uc.notifier.Notify(ctx, events.Change{Entity: "customers", Action: action, ResourceID: strconv.FormatInt(id, 10), Actor: actor})
}
