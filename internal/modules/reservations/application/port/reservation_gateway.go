package port

import (
	"context"

	"mesaYaConsole/internal/modules/reservations/domain"
)

// ReservationGateway is the REST surface for /reservations.
type ReservationGateway interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	// ListByDay returns the reservations of date (YYYY-MM-DD); an empty date lets the backend pick today.
	ListByDay(ctx context.Context, date string) ([]domain.Reservation, error)
	Availability(ctx context.Context, date, timeOfDay string) ([]domain.Availability, error)
	Create(ctx context.Context, body domain.CreateReservationBody, idempotencyKey string) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}
