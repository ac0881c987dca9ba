// Package metrics exposes Prometheus instruments for the storefront.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// OrderEvents counts order lifecycle notifications by kind and resulting status.
type OrderEvents struct {
	events *prometheus.CounterVec
}

func NewOrderEvents(reg prometheus.Registerer) *OrderEvents {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "events_total",
		Help:      "Order lifecycle events by kind and resulting status.",
	}, []string{"kind", "status"})
	reg.MustRegister(events)
	return &OrderEvents{events: events}
}

// Wrap returns a sink that counts every notification before passing it to next.
func (m *OrderEvents) Wrap(next ports.NotificationSink) ports.NotificationSink {
	return countingSink{next: next, events: m.events}
}

type countingSink struct {
	next   ports.NotificationSink
	events *prometheus.CounterVec
}

func (s countingSink) Notify(ctx context.Context, n ports.Notification) {
	s.events.WithLabelValues(string(n.Kind), n.Status).Inc()
	s.next.Notify(ctx, n)
}

// ServerMetrics instruments HTTP handlers.
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware records one request count and latency sample per request, labelled by the route
// pattern rather than the raw path.
func (m *ServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			route := c.Path()
			m.Requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(c.Request().Method, route).
				Observe(float64(time.Since(start).Microseconds()) / 1000)
			return err
		}
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
