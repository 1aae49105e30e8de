package transport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/customers/application/usecase"
	"mesaYaConsole/internal/modules/customers/domain"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(domain.ErrCustomerNotFound, http.StatusNotFound, "Cliente no encontrado").
	WithMapping(domain.ErrUnexpectedPayload, http.StatusBadGateway, "Respuesta inesperada del servidor").
	WithMatcher(restapi.ErrorMatcher("Error al cargar los clientes")).
	WithDefault(http.StatusInternalServerError, "Error inesperado al gestionar los clientes")

// Handler exposes the Clientes view under /api/customers.
type Handler struct {
	uc *usecase.RosterUseCase
}

func NewHandler(uc *usecase.RosterUseCase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/customers", h.Roster)
	g.GET("/customers/search", h.SearchByName)
	g.GET("/customers/email/:email", h.FindByEmail)
	g.GET("/customers/:id", h.Detail)
	g.POST("/customers", h.Create)
	g.PATCH("/customers/:id", h.Update)
	g.DELETE("/customers/:id", h.Delete)
}

type createRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Active    *bool  `json:"active"`
}

// Roster serves GET /customers?search=text.
func (h *Handler) Roster(c echo.Context) error {
	view, err := h.uc.Load(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) SearchByName(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	customers, err := h.uc.SearchByName(c.Request().Context(), name)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *Handler) FindByEmail(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	customer, err := h.uc.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Detail serves GET /customers/:id with the reservation history attached.
func (h *Handler) Detail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	detail, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer payload")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	input := domain.CustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    active,
	}
	customer, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var patch domain.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer payload")
	}
	customer, err := h.uc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return httputil.HTTPError(c, errorMapper, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	return id, nil
}
