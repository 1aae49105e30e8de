package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/home/domain"
)

// Handler serves the landing view model. It never calls the backend.
type Handler struct {
	landing domain.Landing
}

func NewHandler(restaurantName string) *Handler {
	return &Handler{landing: domain.NewLanding(restaurantName)}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/home", h.Home)
}

func (h *Handler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, h.landing)
}
