package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"mesaYaConsole/internal/modules/tables/application/port"
	"mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/platform/restapi"
)

// TableHTTPClient implements port.TableGateway against the reservations backend.
type TableHTTPClient struct {
	rest *restapi.Client
}

var _ port.TableGateway = (*TableHTTPClient)(nil)

func NewTableHTTPClient(rest *restapi.Client) *TableHTTPClient {
	return &TableHTTPClient{rest: rest}
}

func (c *TableHTTPClient) List(ctx context.Context, active *bool) ([]domain.Table, error) {
	query := url.Values{}
	if active != nil {
		query.Set("active", strconv.FormatBool(*active))
	}
	var payload any
	if err := c.rest.Do(ctx, restapi.Request{Method: http.MethodGet, Path: "/tables", Query: query}, &payload); err != nil {
		return nil, err
	}
	tables, ok := domain.BuildTableList(payload)
	if !ok {
		return nil, fmt.Errorf("list tables: %w", domain.ErrUnexpectedPayload)
	}
	return tables, nil
}

func (c *TableHTTPClient) Get(ctx context.Context, number int) (*domain.Table, error) {
	var payload any
	err := c.rest.Do(ctx, restapi.Request{Method: http.MethodGet, Path: tablePath(number), Route: "/tables/{number}"}, &payload)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	table, ok := domain.BuildTableDetail(payload)
	if !ok {
		return nil, fmt.Errorf("get table %d: %w", number, domain.ErrUnexpectedPayload)
	}
	return table, nil
}

func (c *TableHTTPClient) ListByCapacity(ctx context.Context, capacity int) ([]domain.Table, error) {
	var payload any
	path := "/tables/capacity/" + strconv.Itoa(capacity)
	if err := c.rest.Do(ctx, restapi.Request{Method: http.MethodGet, Path: path, Route: "/tables/capacity/{n}"}, &payload); err != nil {
		return nil, err
	}
	tables, ok := domain.BuildTableList(payload)
	if !ok {
		return nil, fmt.Errorf("list tables by capacity: %w", domain.ErrUnexpectedPayload)
	}
	return tables, nil
}

func (c *TableHTTPClient) Create(ctx context.Context, input domain.TableInput) (*domain.Table, error) {
	var payload any
	if err := c.rest.Do(ctx, restapi.Request{Method: http.MethodPost, Path: "/tables", Body: input}, &payload); err != nil {
		return nil, err
	}
	return detailOrInput(payload, input.Number, input), nil
}

func (c *TableHTTPClient) Update(ctx context.Context, number int, patch domain.TablePatch) (*domain.Table, error) {
	var payload any
	err := c.rest.Do(ctx, restapi.Request{Method: http.MethodPatch, Path: tablePath(number), Route: "/tables/{number}", Body: patch}, &payload)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	table, ok := domain.BuildTableDetail(payload)
	if !ok {
		// Some deployments answer PATCH with 204.
		return &domain.Table{Number: number}, nil
	}
	return table, nil
}

func (c *TableHTTPClient) Delete(ctx context.Context, number int) error {
	err := c.rest.Do(ctx, restapi.Request{Method: http.MethodDelete, Path: tablePath(number), Route: "/tables/{number}"}, nil)
	return wrapNotFound(err)
}

func tablePath(number int) string {
	return "/tables/" + strconv.Itoa(number)
}

func wrapNotFound(err error) error {
	if err != nil && errors.Is(err, restapi.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrTableNotFound, err)
	}
	return err
}

func detailOrInput(payload any, number int, input domain.TableInput) *domain.Table {
	if table, ok := domain.BuildTableDetail(payload); ok {
		return table
	}
	return &domain.Table{Number: number, Capacity: input.Capacity, Location: input.Location, Active: input.Active}
}
