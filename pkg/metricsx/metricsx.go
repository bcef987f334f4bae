// Package metricsx holds the Prometheus collectors exposed on /metrics.
package metricsx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "republic"

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	clickEvents  *prometheus.CounterVec
	resetMails   *prometheus.CounterVec
	tokensSwept  prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to keep runs isolated.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		clickEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "click_events_total",
			Help:      "Click events recorded by this process",
		}, []string{"event"}),
		resetMails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_emails_total",
			Help:      "Password reset emails by dispatch result",
		}, []string{"result"}),
		tokensSwept: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_tokens_swept_total",
			Help:      "Expired reset tokens removed by housekeeping",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument wraps h and records requests under the route label. The route
// is the mux pattern, never the raw path, to keep cardinality bounded.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveClick(event string) {
	m.clickEvents.WithLabelValues(event).Inc()
}

// ObserveResetMail records a dispatch outcome: "sent" or "failed".
func (m *Metrics) ObserveResetMail(result string) {
	m.resetMails.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSweep(n int64) {
	if n > 0 {
		m.tokensSwept.Add(float64(n))
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
