package restapi

import (
	"errors"
	"net/http"

	"mesaYaConsole/internal/shared/httputil"
)

// UnreachableMessage is shown whenever the backend cannot be contacted.
const UnreachableMessage = "No se pudo conectar con el servidor. Verifica que el backend esté en ejecución."

// ErrorMatcher maps backend failures for httputil.ErrorMapper: client errors
// keep their status, server errors become 502, transport failures 503.
func ErrorMatcher(fallback string) httputil.Matcher {
	return func(err error) (httputil.HTTPErrorInfo, bool) {
		if errors.Is(err, ErrUnavailable) {
			return httputil.HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: UnreachableMessage}, true
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return httputil.HTTPErrorInfo{}, false
		}
		status := apiErr.Status
		if status >= http.StatusInternalServerError || status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return httputil.HTTPErrorInfo{Status: status, Message: UserMessage(apiErr, fallback)}, true
	}
}
