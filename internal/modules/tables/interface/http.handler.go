package transport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/tables/application/usecase"
	"mesaYaConsole/internal/modules/tables/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(domain.ErrTableNotFound, http.StatusNotFound, "Mesa no encontrada").
	WithMapping(domain.ErrDeleteNotConfirmed, http.StatusPreconditionRequired, "Confirma la eliminación de la mesa").
	WithMapping(domain.ErrUnexpectedPayload, http.StatusBadGateway, "Respuesta inesperada del servidor").
	WithMatcher(restapi.ErrorMatcher("No se pudo completar la operación sobre la mesa")).
	WithDefault(http.StatusInternalServerError, "Error inesperado al gestionar las mesas")

// Handler exposes the Mesas view under /api/tables.
type Handler struct {
	uc *usecase.ManageTablesUseCase
}

func NewHandler(uc *usecase.ManageTablesUseCase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/tables", h.List)
	g.GET("/tables/capacity/:capacity", h.ByCapacity)
	g.GET("/tables/:number", h.Get)
	g.POST("/tables", h.Create)
	g.PATCH("/tables/:number", h.Update)
	g.POST("/tables/:number/toggle", h.Toggle)
	g.POST("/tables/:number/duplicate", h.Duplicate)
	g.DELETE("/tables/:number", h.Delete)
}

type createRequest struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
	Active   *bool  `json:"active"`
}

type updateRequest struct {
	Capacity *int    `json:"capacity"`
	Location *string `json:"location"`
	Active   *bool   `json:"active"`
}

// List serves GET /tables?filter=all|active|inactive&min_capacity=N.
func (h *Handler) List(c echo.Context) error {
	view, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Get(c echo.Context) error {
	number, err := numberParam(c, "number")
	if err != nil {
		return err
	}
	table, err := h.uc.Get(c.Request().Context(), number)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (h *Handler) ByCapacity(c echo.Context) error {
	capacity, err := numberParam(c, "capacity")
	if err != nil {
		return err
	}
	tables, err := h.uc.ByCapacity(c.Request().Context(), capacity)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, tables)
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table payload")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	input := domain.TableInput{Number: req.Number, Capacity: req.Capacity, Location: req.Location, Active: active}
	result, err := h.uc.Create(c.Request().Context(), input, listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Update(c echo.Context) error {
	number, err := numberParam(c, "number")
	if err != nil {
		return err
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table payload")
	}
	patch := domain.TablePatch{Capacity: req.Capacity, Location: req.Location, Active: req.Active}
	result, err := h.uc.Update(c.Request().Context(), number, patch, listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Toggle(c echo.Context) error {
	number, err := numberParam(c, "number")
	if err != nil {
		return err
	}
	result, err := h.uc.Toggle(c.Request().Context(), number, listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Duplicate(c echo.Context) error {
	number, err := numberParam(c, "number")
	if err != nil {
		return err
	}
	result, err := h.uc.Duplicate(c.Request().Context(), number, listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Delete serves DELETE /tables/:number?confirm=true.
func (h *Handler) Delete(c echo.Context) error {
	number, err := numberParam(c, "number")
	if err != nil {
		return err
	}
	confirmed, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("confirm")))
	result, err := h.uc.Delete(c.Request().Context(), number, confirmed, listInput(c))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, result)
}

func listInput(c echo.Context) usecase.ListInput {
	minCapacity, _ := strconv.Atoi(strings.TrimSpace(c.QueryParam("min_capacity")))
	return usecase.ListInput{
		Filter:      domain.ParseFilter(c.QueryParam("filter")),
		MinCapacity: minCapacity,
	}
}

func numberParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil || value <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}
