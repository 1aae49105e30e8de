package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mesaYaConsole/internal/modules/customers/application/port"
	"mesaYaConsole/internal/modules/customers/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
)

// CustomerHTTPClient implements port.CustomerGateway against the reservations backend.
type CustomerHTTPClient struct {
	rest *restapi.Client
}

var _ port.CustomerGateway = (*CustomerHTTPClient)(nil)

func NewCustomerHTTPClient(rest *restapi.Client) *CustomerHTTPClient {
	return &CustomerHTTPClient{rest: rest}
}

func (c *CustomerHTTPClient) List(ctx context.Context) ([]domain.Customer, error) {
	return c.list(ctx, restapi.Request{Method: http.MethodGet, Path: "/customers"})
}

func (c *CustomerHTTPClient) SearchByName(ctx context.Context, name string) ([]domain.Customer, error) {
	query := url.Values{}
	query.Set("name", strings.TrimSpace(name))
	return c.list(ctx, restapi.Request{Method: http.MethodGet, Path: "/customers/search", Query: query})
}

func (c *CustomerHTTPClient) list(ctx context.Context, req restapi.Request) ([]domain.Customer, error) {
	var payload any
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, err
	}
	customers, ok := domain.BuildCustomerList(payload)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, domain.ErrUnexpectedPayload)
	}
	return customers, nil
}

func (c *CustomerHTTPClient) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return c.detail(ctx, restapi.Request{Method: http.MethodGet, Path: customerPath(id), Route: "/customers/{id}"})
}

func (c *CustomerHTTPClient) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	path := "/customers/email/" + url.PathEscape(strings.TrimSpace(email))
	return c.detail(ctx, restapi.Request{Method: http.MethodGet, Path: path, Route: "/customers/email/{email}"})
}

func (c *CustomerHTTPClient) detail(ctx context.Context, req restapi.Request) (*domain.Customer, error) {
	var payload any
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	customer, ok := domain.BuildCustomerDetail(payload)
	if !ok {
		// An empty 200 for a lookup means nobody matched.
		if payload == nil {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Route, domain.ErrUnexpectedPayload)
	}
	return customer, nil
}

func (c *CustomerHTTPClient) History(ctx context.Context, id int64) ([]reservations.Reservation, error) {
	var payload any
	req := restapi.Request{Method: http.MethodGet, Path: customerPath(id) + "/history", Route: "/customers/{id}/history"}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	history, ok := reservations.BuildReservationList(payload)
	if !ok {
		return nil, fmt.Errorf("customer %d history: %w", id, domain.ErrUnexpectedPayload)
	}
	return history, nil
}

func (c *CustomerHTTPClient) Create(ctx context.Context, input domain.CustomerInput, idempotencyKey string) (*domain.Customer, error) {
	var payload any
	req := restapi.Request{Method: http.MethodPost, Path: "/customers", Body: input, IdempotencyKey: idempotencyKey}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, err
	}
	customer, ok := domain.BuildCustomerDetail(payload)
	if !ok {
		return nil, fmt.Errorf("create customer: %w", domain.ErrUnexpectedPayload)
	}
	return customer, nil
}

func (c *CustomerHTTPClient) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var payload any
	req := restapi.Request{Method: http.MethodPatch, Path: customerPath(id), Route: "/customers/{id}", Body: patch}
	if err := c.rest.Do(ctx, req, &payload); err != nil {
		return nil, wrapNotFound(err)
	}
	if customer, ok := domain.BuildCustomerDetail(payload); ok {
		return customer, nil
	}
	return &domain.Customer{ID: id}, nil
}

func (c *CustomerHTTPClient) Delete(ctx context.Context, id int64) error {
	return wrapNotFound(c.rest.Do(ctx, restapi.Request{Method: http.MethodDelete, Path: customerPath(id), Route: "/customers/{id}"}, nil))
}

func customerPath(id int64) string {
	return "/customers/" + strconv.FormatInt(id, 10)
}

func wrapNotFound(err error) error {
	if err != nil && errors.Is(err, restapi.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrCustomerNotFound, err)
	}
	return err
}
