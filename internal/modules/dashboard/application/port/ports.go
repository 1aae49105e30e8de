package port

import (
	"context"
	"io"

	"mesaYaConsole/internal/modules/dashboard/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
)

// ReservationActions applies lifecycle actions; the reservations module implements it.
type ReservationActions interface {
	Complete(ctx context.Context, id int64) (*reservations.Reservation, error)
	Cancel(ctx context.Context, id int64, confirmed bool) (*reservations.Reservation, error)
}

// DayExporter writes the selected day's reservations as a spreadsheet.
type DayExporter interface {
	Export(w io.Writer, overview domain.Overview) error
	ContentType() string
	Extension() string
}
