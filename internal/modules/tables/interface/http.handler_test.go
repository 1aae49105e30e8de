package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/tables/application/usecase"
	"mesaYaConsole/internal/modules/tables/infrastructure"
	"mesaYaConsole/internal/platform/restapi"
)

func newServer(t *testing.T, backend http.HandlerFunc) *echo.Echo {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	gateway := infrastructure.NewTableHTTPClient(restapi.NewClient(srv.URL, time.Second, srv.Client()))
	e := echo.New()
	NewHandler(usecase.NewManageTablesUseCase(gateway, nil)).Register(e.Group("/api"))
	return e
}

func TestListHandler(t *testing.T) {
	e := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("active") != "true" {
			t.Errorf("expected active=true, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"number":1,"capacity":2,"active":true},{"number":2,"capacity":6,"active":true}]`))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables?filter=active&min_capacity=4", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var view usecase.TablesView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Tables) != 1 || view.Tables[0].Number != 2 {
		t.Fatalf("unexpected tables %+v", view.Tables)
	}
	if view.Summary.Total != 2 || view.Summary.AverageCapacity != 4 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
}

func TestCreateHandlerValidation(t *testing.T) {
	e := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called for invalid input")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/tables", strings.NewReader(`{"number":0,"capacity":4}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"number"`) {
		t.Fatalf("expected number field error, got %s", rec.Body.String())
	}
}

func TestDeleteHandlerNeedsConfirm(t *testing.T) {
	e := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called without confirmation")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/tables/3", nil))
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428, got %d", rec.Code)
	}
}

func TestDeleteHandlerSurfacesBackendMessage(t *testing.T) {
	e := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"La mesa tiene reservas activas"}`))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/tables/3?confirm=true", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "La mesa tiene reservas activas") {
		t.Fatalf("expected backend message, got %s", rec.Body.String())
	}
}

func TestInvalidNumberParam(t *testing.T) {
	e := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
