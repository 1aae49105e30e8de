package transport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/dashboard/application/usecase"
	"mesaYaConsole/internal/modules/dashboard/domain"
	reservations "mesaYaConsole/internal/modules/reservations/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(domain.ErrInvalidDate, http.StatusBadRequest, "La fecha no es válida").
	WithMapping(reservations.ErrReservationNotFound, http.StatusNotFound, "Reserva no encontrada").
	WithMapping(reservations.ErrConfirmationRequired, http.StatusPreconditionRequired, "¿Está seguro de cancelar esta reserva?").
	WithMapping(reservations.ErrTransitionNotAllowed, http.StatusConflict, "La reserva no admite este cambio de estado").
	WithMapping(reservations.ErrUnexpectedPayload, http.StatusBadGateway, "Respuesta inesperada del servidor").
	WithMatcher(restapi.ErrorMatcher("Error al cargar datos")).
	WithDefault(http.StatusInternalServerError, "Error al cargar datos")

// Handler exposes the Dashboard view under /api/dashboard.
type Handler struct {
	uc *usecase.DashboardUseCase
}

func NewHandler(uc *usecase.DashboardUseCase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/dashboard", h.Overview)
	g.GET("/dashboard/export", h.Export)
	g.POST("/dashboard/reservations/:id/complete", h.Complete)
	g.POST("/dashboard/reservations/:id/cancel", h.Cancel)
}

// Overview serves GET /dashboard?date=YYYY-MM-DD; the date defaults to today.
func (h *Handler) Overview(c echo.Context) error {
	overview, err := h.uc.Load(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	result, err := h.uc.Complete(c.Request().Context(), id, c.QueryParam("date"))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Cancel serves POST /dashboard/reservations/:id/cancel?confirm=true&date=YYYY-MM-DD.
func (h *Handler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	confirmed, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("confirm")))
	result, err := h.uc.Cancel(c.Request().Context(), id, confirmed, c.QueryParam("date"))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Export(c echo.Context) error {
	export, err := h.uc.Export(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Blob(http.StatusOK, export.ContentType, export.Body)
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	return id, nil
}
