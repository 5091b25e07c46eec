package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"storage", "operation", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"storage", "operation", "status"})
)

// Repository tracks metrics for a journal storage backend.
type Repository struct {
	storage string
}

// NewRepository creates a Repository collector labelled with storage,
// for example "clickhouse" or "leveldb".
func NewRepository(storage string) *Repository {
	if storage == "" {
		storage = "unknown"
	}
	return &Repository{storage: storage}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(m.storage, operation, status).Inc()
	repositoryRequestDuration.WithLabelValues(m.storage, operation, status).Observe(time.Since(started).Seconds())
}
