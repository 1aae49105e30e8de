package port

import (
	"context"

	"mesaYaConsole/internal/modules/customers/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
)

// CustomerGateway is the REST surface for /customers.
type CustomerGateway interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	History(ctx context.Context, id int64) ([]reservations.Reservation, error)
	// FindByEmail matches the email exactly; a miss is domain.ErrCustomerNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	SearchByName(ctx context.Context, name string) ([]domain.Customer, error)
	Create(ctx context.Context, input domain.CustomerInput, idempotencyKey string) (*domain.Customer, error)
	Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
