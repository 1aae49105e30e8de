package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
// An empty Message means the error text itself is shown to the user.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// Matcher inspects an error that is not a plain sentinel (typed backend errors,
// validation errors) and reports whether it produced a mapping.
type Matcher func(err error) (HTTPErrorInfo, bool)

// ErrorMapper maps domain errors to HTTP status codes and user-facing messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	matchers       []Matcher
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithMatcher registers a matcher evaluated after the sentinel mappings.
func (m *ErrorMapper) WithMatcher(matcher Matcher) *ErrorMapper {
	if matcher != nil {
		m.matchers = append(m.matchers, matcher)
	}
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			message := mapping.Message
			if message == "" {
				message = err.Error()
			}
			return HTTPErrorInfo{Status: mapping.Status, Message: message}
		}
	}

	for _, matcher := range m.matchers {
		if info, ok := matcher(err); ok {
			return info
		}
	}

	// Context errors only apply once typed errors had their say.
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// QuickMap is a convenience function for quick error mapping without creating a mapper.
func QuickMap(err error, mappings ...ErrorMapping) HTTPErrorInfo {
	mapper := NewErrorMapper()
	mapper.mappings = append(mapper.mappings, mappings...)
	return mapper.Map(err)
}
