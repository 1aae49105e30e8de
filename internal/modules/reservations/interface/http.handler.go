package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/reservations/application/usecase"
	"mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(domain.ErrMalformedTime, http.StatusUnprocessableEntity, usecase.MalformedTimeMessage).
	WithMapping(domain.ErrReservationNotFound, http.StatusNotFound, "Reserva no encontrada").
	WithMapping(domain.ErrConfirmationRequired, http.StatusPreconditionRequired, "¿Está seguro de cancelar esta reserva?").
	WithMapping(domain.ErrTransitionNotAllowed, http.StatusConflict, "La reserva no admite este cambio de estado").
	WithMapping(domain.ErrUnexpectedPayload, http.StatusBadGateway, "Respuesta inesperada del servidor").
	WithMatcher(bookingMatcher).
	WithMatcher(restapi.ErrorMatcher("No se pudo completar la operación sobre la reserva")).
	WithDefault(http.StatusInternalServerError, usecase.BookingFailureMessage)

// bookingMatcher keeps the workflow's chosen message and derives the status
// from the backend failure underneath.
func bookingMatcher(err error) (httputil.HTTPErrorInfo, bool) {
	var bookingErr *usecase.BookingError
	if !errors.As(err, &bookingErr) {
		return httputil.HTTPErrorInfo{}, false
	}
	status := http.StatusBadGateway
	switch code := restapi.StatusOf(err); {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, restapi.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		status = code
	}
	return httputil.HTTPErrorInfo{Status: status, Message: bookingErr.Message}, true
}

// Handler exposes the Reservar view and the reservation lifecycle actions.
type Handler struct {
	book      *usecase.BookReservationUseCase
	form      *usecase.BookingFormUseCase
	lifecycle *usecase.LifecycleUseCase
}

func NewHandler(book *usecase.BookReservationUseCase, form *usecase.BookingFormUseCase, lifecycle *usecase.LifecycleUseCase) *Handler {
	return &Handler{book: book, form: form, lifecycle: lifecycle}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/reservar", h.Form)
	g.POST("/reservar", h.Book)
	g.GET("/reservations/:id", h.Get)
	g.POST("/reservations/:id/complete", h.Complete)
	g.POST("/reservations/:id/cancel", h.Cancel)
	g.DELETE("/reservations/:id", h.Delete)
}

// Form serves GET /reservar?date=YYYY-MM-DD&time=HH:MM&party_size=N.
func (h *Handler) Form(c echo.Context) error {
	partySize, _ := strconv.Atoi(strings.TrimSpace(c.QueryParam("party_size")))
	view, err := h.form.Load(c.Request().Context(), usecase.FormQuery{
		Date:      c.QueryParam("date"),
		Time:      c.QueryParam("time"),
		PartySize: partySize,
	})
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Book(c echo.Context) error {
	var form domain.BookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking payload")
	}
	result, err := h.book.Book(c.Request().Context(), form)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.lifecycle.Get(c.Request().Context(), id)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.lifecycle.Complete(c.Request().Context(), id)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// Cancel serves POST /reservations/:id/cancel?confirm=true.
func (h *Handler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.lifecycle.Cancel(c.Request().Context(), id, confirmed(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.lifecycle.Delete(c.Request().Context(), id, confirmed(c)); err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func confirmed(c echo.Context) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("confirm")))
	return ok
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	return id, nil
}
