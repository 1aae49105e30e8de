package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mesaYaConsole/internal/modules/reservations/application/port"
	"mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
)

// ReservationHTTPClient implements port.ReservationGateway against the reservations backend.
type ReservationHTTPClient struct {
	rest *restapi.Client
}

var _ port.ReservationGateway = (*ReservationHTTPClient)(nil)

func NewReservationHTTPClient(rest *restapi.Client) *ReservationHTTPClient {
	return &ReservationHTTPClient{rest: rest}
}

func (c *ReservationHTTPClient) List(ctx context.Context) ([]domain.Reservation, error) {
	return c.list(ctx, restapi.Request{Method: http.MethodGet, Path: "/reservations"})
}

func (c *ReservationHTTPClient) ListByDay(ctx context.Context, date string) ([]domain.Reservation, error) {
	query := url.Values{}
	if date = strings.TrimSpace(date); date != "" {
		query.Set("date", date)
	}
	return c.list(ctx, restapi.Request{Method: http.MethodGet, Path: "/reservations/day", Query: query})
}

func (c *ReservationHTTPClient) list(ctx context.Context, req restapi.Request) ([]domain.Reservation, error) {
	var payload any
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, err
	}
	reservations, ok := domain.BuildReservationList(payload)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, domain.ErrUnexpectedPayload)
	}
	return reservations, nil
}

func (c *ReservationHTTPClient) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	var payload any
	if err := c.rest.Do(ctx, restapi.Request{Method: http.MethodGet, Path: reservationPath(id), Route: "/reservations/{id}"}, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	reservation, ok := domain.BuildReservationDetail(payload)
	if !ok {
		return nil, fmt.Errorf("get reservation %d: %w", id, domain.ErrUnexpectedPayload)
	}
	return reservation, nil
}

func (c *ReservationHTTPClient) Availability(ctx context.Context, date, timeOfDay string) ([]domain.Availability, error) {
	query := url.Values{}
	query.Set("date", strings.TrimSpace(date))
	query.Set("time", strings.TrimSpace(timeOfDay))
	var payload any
	if err := c.rest.Do(ctx, restapi.Request{Method: http.MethodGet, Path: "/reservations/availability", Query: query}, &payload); err != nil {
		return nil, err
	}
	records, ok := domain.BuildAvailabilityList(payload)
	if !ok {
		return nil, fmt.Errorf("availability: %w", domain.ErrUnexpectedPayload)
	}
	return records, nil
}

func (c *ReservationHTTPClient) Create(ctx context.Context, body domain.CreateReservationBody, idempotencyKey string) (*domain.Reservation, error) {
	var payload any
	req := restapi.Request{Method: http.MethodPost, Path: "/reservations", Body: body, IdempotencyKey: idempotencyKey}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, err
	}
	reservation, ok := domain.BuildReservationDetail(payload)
	if !ok {
		return nil, fmt.Errorf("create reservation: %w", domain.ErrUnexpectedPayload)
	}
	return reservation, nil
}

func (c *ReservationHTTPClient) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	var payload any
	req := restapi.Request{Method: http.MethodPatch, Path: reservationPath(id), Route: "/reservations/{id}", Body: patch}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	return detailOrID(payload, id), nil
}

// Cancel issues PATCH /reservations/{id}/cancel.
func (c *ReservationHTTPClient) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	var payload any
	req := restapi.Request{Method: http.MethodPatch, Path: reservationPath(id) + "/cancel", Route: "/reservations/{id}/cancel"}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	reservation := detailOrID(payload, id)
	if reservation.State == domain.ReservationStatusUnknown {
		reservation.State = domain.ReservationStatusCancelled
	}
	return reservation, nil
}

func (c *ReservationHTTPClient) Delete(ctx context.Context, id int64) error {
	return wrapNotFound(c.rest.Do(ctx, restapi.Request{Method: http.MethodDelete, Path: reservationPath(id), Route: "/reservations/{id}"}, nil))
}

func reservationPath(id int64) string {
	return "/reservations/" + strconv.FormatInt(id, 10)
}

func wrapNotFound(err error) error {
	if err != nil && errors.Is(err, restapi.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrReservationNotFound, err)
	}
	return err
}

func detailOrID(payload any, id int64) *domain.Reservation {
	if reservation, ok := domain.BuildReservationDetail(payload); ok {
		return reservation
	}
	return &domain.Reservation{ID: id}
}
