package metrics

import (
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	complianceChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "compliance",
		Name:      "checks_total",
		Help:      "Count of compliance checks by reason.",
	}, []string{"checker", "reason", "status"})

	complianceCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "compliance",
		Name:      "check_duration_seconds",
		Help:      "Duration of compliance checks.",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"checker", "status"})
)

// Compliance tracks metrics for a named compliance checker.
type Compliance struct {
	checker string
}

// NewCompliance constructs a Compliance collector labelled with checker.
func NewCompliance(checker string) *Compliance {
	if checker == "" {
		checker = "unknown"
	}
	return &Compliance{checker: checker}
}

// ObserveCheck records one verdict.
func (m Compliance) ObserveCheck(reason model.ReasonCode, err error, started time.Time) {
	status := statusOf(err)
	if reason == "" {
		reason = "unknown"
	}
	complianceChecksTotal.WithLabelValues(m.checker, string(reason), status).Inc()
	complianceCheckDuration.WithLabelValues(m.checker, status).Observe(time.Since(started).Seconds())
}
