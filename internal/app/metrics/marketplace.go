// Package metrics exposes the service's Prometheus collectors and HTTP
// instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	submissionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "submissions",
			Name:      "created_total",
			Help:      "Total number of submissions accepted into the queue.",
		},
		[]string{"kind"},
	)

	reviewActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "submissions",
			Name:      "review_actions_total",
			Help:      "Total number of moderation actions applied.",
		},
		[]string{"action"},
	)

	listingsMaterialized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "catalog",
			Name:      "listings_materialized_total",
			Help:      "Total number of listings registered from approved submissions.",
		},
		[]string{"kind"},
	)

	celebrationsPending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "marketplace",
			Subsystem: "celebrations",
			Name:      "pending",
			Help:      "Whether a celebration event is currently pending (0 or 1).",
		},
	)

	celebrationsShown = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "celebrations",
			Name:      "dismissed_total",
			Help:      "Total number of celebration events dismissed.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		submissionsCreated,
		reviewActions,
		listingsMaterialized,
		celebrationsPending,
		celebrationsShown,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordSubmissionCreated counts an accepted submission by kind.
func RecordSubmissionCreated(kind string) {
	submissionsCreated.WithLabelValues(kind).Inc()
}

// RecordReviewAction counts a moderation action (approve, reject, revision).
func RecordReviewAction(action string) {
	reviewActions.WithLabelValues(action).Inc()
}

// RecordMaterialization counts a listing registered from an approval.
func RecordMaterialization(kind string) {
	listingsMaterialized.WithLabelValues(kind).Inc()
}

// SetCelebrationPending flags whether an event is awaiting dismissal.
func SetCelebrationPending(pending bool) {
	if pending {
		celebrationsPending.Set(1)
	} else {
		celebrationsPending.Set(0)
	}
}

// RecordCelebrationDismissed counts a dismissed event by kind.
func RecordCelebrationDismissed(kind string) {
	celebrationsShown.WithLabelValues(kind).Inc()
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// canonicalPath collapses resource IDs so the label cardinality stays bounded.
func canonicalPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return "/"
	}
	switch parts[0] {
	case "apps", "deals", "submissions", "startups":
		if len(parts) >= 2 {
			parts[1] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
