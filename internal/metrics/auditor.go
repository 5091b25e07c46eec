package metrics

import (
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditorRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auditor",
		Name:      "runs_total",
		Help:      "Count of journal audits by result.",
	}, []string{"reason", "status"})

	auditorRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "auditor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a journal audit.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	auditorBlocks = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "auditor",
		Name:      "blocks",
		Help:      "Number of blocks loaded per audit.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})
)

// Auditor tracks metrics for journal audits.
type Auditor struct{}

func NewAuditor() *Auditor {
	return &Auditor{}
}

// ObserveAudit records one audit run.
func (m Auditor) ObserveAudit(reason model.ReasonCode, blocks int, err error, started time.Time) {
	status := statusOf(err)
	if reason == "" {
		reason = "unknown"
	}
	auditorRunsTotal.WithLabelValues(string(reason), status).Inc()
	auditorRunDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	auditorBlocks.Observe(float64(blocks))
}
