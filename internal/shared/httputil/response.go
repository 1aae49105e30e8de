package httputil

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/shared/validation"
)

// ErrorBody is the JSON payload of every failed console request. Fields is
// only present for validation failures and carries one message per form field.
type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HTTPError converts err into an *echo.HTTPError using mapper. Validation
// failures always become 422 with their field map.
func HTTPError(c echo.Context, mapper *ErrorMapper, err error) *echo.HTTPError {
	if fields, ok := validation.Fields(err); ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrorBody{
			Message: "Revisa los campos marcados",
			Fields:  fields,
		})
	}
	info := mapper.Map(err)
	attrs := []any{
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Int("status", info.Status),
		slog.Any("error", err),
	}
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}
	if info.Status >= http.StatusInternalServerError {
		slog.Error("console request failed", attrs...)
	} else {
		slog.Warn("console request rejected", attrs...)
	}
	return echo.NewHTTPError(info.Status, ErrorBody{Message: info.Message})
}
