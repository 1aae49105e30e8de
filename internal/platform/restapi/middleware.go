package restapi

import (
	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/shared/auth"
)

// ForwardBearerToken copies the caller's bearer token into the request
// context so gateway calls made for this request authenticate as the caller.
func ForwardBearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := auth.ExtractBearerToken(c.Request()); token != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(WithBearerToken(req.Context(), token)))
			}
			return next(c)
		}
	}
}
