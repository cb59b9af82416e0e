// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sports_academy",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sports_academy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sports_academy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	authRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sports_academy",
			Subsystem: "auth",
			Name:      "rejections_total",
			Help:      "Requests rejected by the authorization chain.",
		},
		[]string{"reason"},
	)

	settlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sports_academy",
			Subsystem: "settlement",
			Name:      "outcomes_total",
			Help:      "Settlement outcomes by payment and reservation result.",
		},
		[]string{"payment", "reservation"},
	)

	chargeIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sports_academy",
			Subsystem: "settlement",
			Name:      "charge_intents_total",
			Help:      "Payment provider charge intents by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		authRejections,
		settlements,
		chargeIntents,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by chi route pattern.
// Requests that match no route share the "unmatched" label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// AuthRejected counts a request stopped by a guard; reason is
// "unauthorized" or "forbidden".
func AuthRejected(reason string) {
	authRejections.WithLabelValues(reason).Inc()
}

// Settled records the outcome of one settlement.
func Settled(inserted bool, deleted int64) {
	payment := "duplicate"
	if inserted {
		payment = "inserted"
	}
	reservation := "removed"
	if deleted == 0 {
		reservation = "not_found"
	}
	settlements.WithLabelValues(payment, reservation).Inc()
}

// ChargeIntent records a provider call result: "ok" or "error".
func ChargeIntent(result string) {
	chargeIntents.WithLabelValues(result).Inc()
}
