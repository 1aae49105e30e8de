package port

import (
	"context"

	"mesaYaConsole/internal/modules/tables/domain"
)

// TableGateway is the REST surface for /tables.
type TableGateway interface {
	// List returns all tables, or only those matching active when it is non-nil.
	List(ctx context.Context, active *bool) ([]domain.Table, error)
	Get(ctx context.Context, number int) (*domain.Table, error)
	ListByCapacity(ctx context.Context, capacity int) ([]domain.Table, error)
	Create(ctx context.Context, input domain.TableInput) (*domain.Table, error)
	Update(ctx context.Context, number int, patch domain.TablePatch) (*domain.Table, error)
	Delete(ctx context.Context, number int) error
}
