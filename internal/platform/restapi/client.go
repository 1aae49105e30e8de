package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mesaYaConsole/internal/shared/normalization"
)

// CallObserver receives one callback per backend call. Route is the
// low-cardinality path template (e.g. "/tables/{number}").
type CallObserver interface {
	ObserveCall(method, route string, status int, elapsed time.Duration)
}

// Client wraps http.Client with base URL handling, JSON encoding and
// structured error decoding for the reservations backend. It never retries.
type Client struct {
	baseURL  string
	client   *http.Client
	timeout  time.Duration
	observer CallObserver
}

// Option customises a Client.
type Option func(*Client)

// WithObserver attaches a call observer (metrics).
func WithObserver(observer CallObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// Request describes a single backend call.
type Request struct {
	Method         string
	Path           string
	Route          string
	Query          url.Values
	Body           any
	IdempotencyKey string
}

func NewClient(baseURL string, timeout time.Duration, client *http.Client, opts ...Option) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3000"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{}
	}
	c := &Client{baseURL: trimmed, client: client, timeout: timeoutOrDefault(timeout)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalised backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs the request and decodes a successful JSON response into out
// (which may be nil). Non-2xx responses become *APIError; transport failures
// wrap ErrUnavailable.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := strings.ToUpper(strings.TrimSpace(r.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := "/" + strings.TrimLeft(strings.TrimSpace(r.Path), "/")
	route := r.Route
	if route == "" {
		route = path
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader = http.NoBody
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, route, err)
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		slog.Error("backend request build failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return err
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if key := strings.TrimSpace(r.IdempotencyKey); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	slog.Debug("backend request", slog.String("method", method), slog.String("url", req.URL.String()))

	started := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		c.observe(method, route, 0, started)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, route, ctxErr)
		}
		slog.Error("backend request error", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("%s %s: %w: %w", method, route, ErrUnavailable, err)
	}
	defer res.Body.Close()
	c.observe(method, route, res.StatusCode, started)

	slog.Debug("backend response", slog.Int("status", res.StatusCode), slog.String("method", method), slog.String("url", req.URL.String()))

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, route, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := newAPIError(method, path, res.StatusCode, raw)
		if res.StatusCode >= http.StatusInternalServerError {
			slog.Error("backend unexpected status", slog.Int("status", res.StatusCode), slog.String("method", method), slog.String("url", req.URL.String()), slog.String("body", apiErr.Body))
		} else {
			slog.Warn("backend rejected request", slog.Int("status", res.StatusCode), slog.String("method", method), slog.String("url", req.URL.String()), slog.String("message", apiErr.Message))
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeInto(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, route, err)
	}
	return nil
}

// decodeInto accepts both bare payloads and {"data": ...} / {"items": ...} envelopes.
func decodeInto(raw []byte, out any) error {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	if _, isMap := generic.(map[string]any); !isMap {
		return json.Unmarshal(raw, out)
	}
	reencoded, err := json.Marshal(normalization.UnwrapEnvelope(generic))
	if err != nil {
		return err
	}
	return json.Unmarshal(reencoded, out)
}

func (c *Client) observe(method, route string, status int, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveCall(method, route, status, time.Since(started))
}

const maxBodyBytes = 4 << 20

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}

var (
	// ErrUnavailable marks transport failures: the backend could not be reached.
	ErrUnavailable = errors.New("reservations backend unreachable")
	// ErrNotFound matches any *APIError with a 404 status.
	ErrNotFound = errors.New("backend resource not found")
)
