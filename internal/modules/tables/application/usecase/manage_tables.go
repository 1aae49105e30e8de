package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"mesaYaConsole/internal/modules/tables/application/port"
	"mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/auth"
	"mesaYaConsole/internal/shared/events"
)

// ListInput carries the Mesas view filters.
type ListInput struct {
	Filter      domain.Filter
	MinCapacity int
}

// TablesView is the Mesas screen state after a load.
type TablesView struct {
	Filter      domain.Filter  `json:"filter"`
	MinCapacity int            `json:"min_capacity"`
	Tables      []domain.Table `json:"tables"`
	Summary     domain.Summary `json:"summary"`
}

// MutationResult pairs the outcome of a mutation with the reloaded list.
type MutationResult struct {
	Message string        `json:"message"`
	Table   *domain.Table `json:"table,omitempty"`
	View    *TablesView   `json:"view"`
}

// ManageTablesUseCase drives the Mesas view. Every mutation is followed by a
// full reload; nothing is patched in memory.
type ManageTablesUseCase struct {
	gateway  port.TableGateway
	notifier events.Notifier
}

func NewManageTablesUseCase(gateway port.TableGateway, notifier events.Notifier) *ManageTablesUseCase {
	return &ManageTablesUseCase{gateway: gateway, notifier: events.OrNop(notifier)}
}

// List loads the tables for the filter, computes the summary on the loaded
// set and then applies the local minimum-capacity filter.
func (uc *ManageTablesUseCase) List(ctx context.Context, in ListInput) (*TablesView, error) {
	loaded, err := uc.gateway.List(ctx, in.Filter.ActiveParam())
	if err != nil {
		return nil, err
	}
	return buildView(in, loaded), nil
}

func buildView(in ListInput, loaded []domain.Table) *TablesView {
	filter := in.Filter
	if filter == "" {
		filter = domain.FilterAll
	}
	return &TablesView{
		Filter:      filter,
		MinCapacity: in.MinCapacity,
		Tables:      domain.Apply(loaded, domain.FilterAll, in.MinCapacity),
		Summary:     domain.Summarize(loaded),
	}
}

func (uc *ManageTablesUseCase) Get(ctx context.Context, number int) (*domain.Table, error) {
	return uc.gateway.Get(ctx, number)
}

// ByCapacity asks the backend for tables able to seat capacity guests.
func (uc *ManageTablesUseCase) ByCapacity(ctx context.Context, capacity int) ([]domain.Table, error) {
	return uc.gateway.ListByCapacity(ctx, capacity)
}

func (uc *ManageTablesUseCase) Create(ctx context.Context, input domain.TableInput, reload ListInput) (*MutationResult, error) {
	input = input.Normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	table, err := uc.gateway.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, "created", table.Number)
	return uc.finish(ctx, fmt.Sprintf("Mesa %d creada correctamente", table.Number), table, reload)
}

func (uc *ManageTablesUseCase) Update(ctx context.Context, number int, patch domain.TablePatch, reload ListInput) (*MutationResult, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	table, err := uc.gateway.Update(ctx, number, patch)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, "updated", number)
	return uc.finish(ctx, fmt.Sprintf("Mesa %d actualizada correctamente", number), table, reload)
}

// Toggle reads the table's current flag from the backend and flips it.
func (uc *ManageTablesUseCase) Toggle(ctx context.Context, number int, reload ListInput) (*MutationResult, error) {
	current, err := uc.gateway.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	table, err := uc.gateway.Update(ctx, number, domain.SetActive(!current.Active))
	if err != nil {
		return nil, err
	}
	state := "activada"
	if current.Active {
		state = "desactivada"
	}
	uc.changed(ctx, "updated", number)
	return uc.finish(ctx, fmt.Sprintf("Mesa %d %s", number, state), table, reload)
}

// Delete requires confirmed to be true; nothing is sent otherwise.
func (uc *ManageTablesUseCase) Delete(ctx context.Context, number int, confirmed bool, reload ListInput) (*MutationResult, error) {
	if !confirmed {
		return nil, domain.ErrDeleteNotConfirmed
	}
	if err := uc.gateway.Delete(ctx, number); err != nil {
		slog.Warn("table delete failed", slog.Int("tableNumber", number), slog.Any("error", err))
		return nil, err
	}
	uc.changed(ctx, "deleted", number)
	return uc.finish(ctx, fmt.Sprintf("Mesa %d eliminada", number), nil, reload)
}

// Duplicate copies a table under the next free number of the loaded set.
func (uc *ManageTablesUseCase) Duplicate(ctx context.Context, number int, reload ListInput) (*MutationResult, error) {
	loaded, err := uc.gateway.List(ctx, reload.Filter.ActiveParam())
	if err != nil {
		return nil, err
	}
	source, ok := domain.FindByNumber(loaded, number)
	if !ok {
		fetched, err := uc.gateway.Get(ctx, number)
		if err != nil {
			return nil, err
		}
		source = *fetched
	}
	input := domain.Duplicate(source, loaded)
	table, err := uc.gateway.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, "created", table.Number)
	return uc.finish(ctx, fmt.Sprintf("Mesa %d duplicada como mesa %d", number, table.Number), table, reload)
}

func (uc *ManageTablesUseCase) finish(ctx context.Context, message string, table *domain.Table, reload ListInput) (*MutationResult, error) {
	view, err := uc.List(ctx, reload)
	if err != nil {
		// The mutation already happened; report it and let the client reload later.
		slog.Warn("tables reload after mutation failed", slog.Any("error", err))
		return &MutationResult{Message: message, Table: table}, nil
	}
	return &MutationResult{Message: message, Table: table, View: view}, nil
}

func (uc *ManageTablesUseCase) changed(ctx context.Context, action string, number int) {
	actor := auth.Actor(restapi.BearerToken(ctx))
	slog.Info("table mutated", slog.String("action", action), slog.Int("tableNumber", number), slog.String("actor", actor))
	uc.notifier.Notify(ctx, events.Change{Entity: "tables", Action: action, ResourceID: strconv.Itoa(number), Actor: actor})
}
