package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mesaya_console"

// Recorder owns the console's Prometheus collectors. A nil *Recorder is a
// valid no-op so callers never need to guard it.
type Recorder struct {
	registry *prometheus.Registry

	backendCalls    *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	bookings        *prometheus.CounterVec
	followUpFailure *prometheus.CounterVec
	lifecycle       *prometheus.CounterVec
	wsClients       prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		backendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_requests_total",
				Help:      "Count of calls to the reservations backend by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		backendLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Latency of calls to the reservations backend.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Count of booking submissions by outcome.",
			},
			[]string{"outcome"},
		),
		followUpFailure: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_followup_failures_total",
				Help:      "Count of best-effort booking follow-ups that failed.",
			},
			[]string{"step"},
		),
		lifecycle: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_transitions_total",
				Help:      "Count of reservation state changes issued from the dashboard.",
			},
			[]string{"target", "outcome"},
		),
		wsClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "websocket_clients",
				Help:      "Open console websocket connections.",
			},
		),
	}
	r.registry.MustRegister(
		r.backendCalls,
		r.backendLatency,
		r.bookings,
		r.followUpFailure,
		r.lifecycle,
		r.wsClients,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveCall satisfies restapi.CallObserver. Status 0 means the backend was unreachable.
func (r *Recorder) ObserveCall(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := "unreachable"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.backendCalls.WithLabelValues(method, route, label).Inc()
	r.backendLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) IncBooking(outcome string) {
	if r == nil {
		return
	}
	r.bookings.WithLabelValues(outcome).Inc()
}

func (r *Recorder) IncFollowUpFailure(step string) {
	if r == nil {
		return
	}
	r.followUpFailure.WithLabelValues(step).Inc()
}

func (r *Recorder) IncTransition(target, outcome string) {
	if r == nil {
		return
	}
	r.lifecycle.WithLabelValues(target, outcome).Inc()
}

func (r *Recorder) ClientConnected() {
	if r == nil {
		return
	}
	r.wsClients.Inc()
}

func (r *Recorder) ClientDisconnected() {
	if r == nil {
		return
	}
	r.wsClients.Dec()
}
