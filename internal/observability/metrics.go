package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	sourceQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdhctl",
			Subsystem: "source",
			Name:      "queries_total",
			Help:      "Raw metadata source query calls.",
		},
		[]string{"op", "status"},
	)
	sourceQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tdhctl",
			Subsystem: "source",
			Name:      "query_duration_seconds",
			Help:      "Metadata source query duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdhctl",
			Subsystem: "decode",
			Name:      "failures_total",
			Help:      "Metadata decode failures by operation and kind.",
		},
		[]string{"op", "kind"},
	)
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdhctl",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Catalog cache lookups by outcome.",
		},
		[]string{"cache", "outcome"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdhctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tdhctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			sourceQueries, sourceQueryDuration, decodeFailures,
			cacheLookups, httpRequests, httpDuration,
		)
	})
}

func RecordSourceQuery(op string, status uint32, duration time.Duration) {
	RegisterMetrics()
	sourceQueries.WithLabelValues(op, strconv.FormatUint(uint64(status), 10)).Inc()
	sourceQueryDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func RecordDecodeFailure(op, kind string) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(op, kind).Inc()
}

func RecordCacheLookup(cache string, hit bool) {
	RegisterMetrics()
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(cache, outcome).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
