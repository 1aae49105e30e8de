package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mesaYaConsole/internal/shared/normalization"
)

// APIError is a non-2xx backend response. Message and Detail hold the
// backend's "message" and "error" fields when the body carried them.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Detail  string
	Body    string
}

func newAPIError(method, path string, status int, raw []byte) *APIError {
	apiErr := &APIError{
		Method: method,
		Path:   path,
		Status: status,
		Body:   strings.TrimSpace(string(truncate(raw, 2048))),
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err == nil {
		if fields := normalization.MapFromPayload(payload); fields != nil {
			apiErr.Message = normalization.AsMessage(fields["message"])
			apiErr.Detail = normalization.AsMessage(fields["error"])
		}
	}
	return apiErr
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	case e.Detail != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
	}
}

// Is lets callers use errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// UserMessage picks the most specific message available for err: the
// backend's "message", then its "error" field, then the error text, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
	}
	if text := strings.TrimSpace(err.Error()); text != "" {
		return text
	}
	return fallback
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func truncate(raw []byte, limit int) []byte {
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit]
}
