package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var errTableMissing = errors.New("table not found")

func TestErrorMapperMapsWrappedSentinel(t *testing.T) {
	mapper := NewErrorMapper().WithMapping(errTableMissing, http.StatusNotFound, "table not found")

	info := mapper.Map(fmt.Errorf("load table 4: %w", errTableMissing))
	if info.Status != http.StatusNotFound || info.Message != "table not found" {
		t.Fatalf("unexpected mapping: %#v", info)
	}
}

func TestErrorMapperEmptyMessageUsesErrorText(t *testing.T) {
	mapper := NewErrorMapper().WithMapping(errTableMissing, http.StatusNotFound, "")

	info := mapper.Map(fmt.Errorf("table 4: %w", errTableMissing))
	if info.Message != "table 4: table not found" {
		t.Fatalf("expected error text, got %q", info.Message)
	}
}

func TestErrorMapperMatcherAndDefault(t *testing.T) {
	custom := errors.New("custom")
	mapper := NewErrorMapper().
		WithMatcher(func(err error) (HTTPErrorInfo, bool) {
			if errors.Is(err, custom) {
				return HTTPErrorInfo{Status: http.StatusTeapot, Message: "brewing"}, true
			}
			return HTTPErrorInfo{}, false
		}).
		WithDefault(http.StatusBadGateway, "backend failure")

	if info := mapper.Map(custom); info.Status != http.StatusTeapot {
		t.Fatalf("expected matcher to win, got %#v", info)
	}
	if info := mapper.Map(errors.New("other")); info.Status != http.StatusBadGateway || info.Message != "backend failure" {
		t.Fatalf("expected default mapping, got %#v", info)
	}
}

func TestQuickMapContextErrors(t *testing.T) {
	if info := QuickMap(context.DeadlineExceeded); info.Status != http.StatusGatewayTimeout {
		t.Fatalf("expected gateway timeout, got %#v", info)
	}
	if info := QuickMap(nil); info.Status != http.StatusOK {
		t.Fatalf("expected ok for nil error, got %#v", info)
	}
}

func TestErrorMapperMatcherBeforeContextErrors(t *testing.T) {
	mapper := NewErrorMapper().
		WithMatcher(func(err error) (HTTPErrorInfo, bool) {
			if errors.Is(err, errTableMissing) {
				return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "mesa no disponible"}, true
			}
			return HTTPErrorInfo{}, false
		})

	wrapped := fmt.Errorf("%w: %w", errTableMissing, context.DeadlineExceeded)
	if info := mapper.Map(wrapped); info.Message != "mesa no disponible" {
		t.Fatalf("expected matcher message, got %#v", info)
	}
	if info := mapper.Map(fmt.Errorf("GET /tables: %w", context.DeadlineExceeded)); info.Status != http.StatusGatewayTimeout || info.Message != "request timeout" {
		t.Fatalf("expected request timeout, got %#v", info)
	}
	if info := mapper.Map(context.Canceled); info.Status != http.StatusServiceUnavailable || info.Message != "request cancelled" {
		t.Fatalf("expected request cancelled, got %#v", info)
	}
}
