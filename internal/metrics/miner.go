// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "complianceledger"

var (
	minerMineTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "mine_total",
		Help:      "Count of mining attempts by compliance reason.",
	}, []string{"reason", "status"})

	minerMineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "mine_duration_seconds",
		Help:      "Duration of a mining attempt.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	minerJournalFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "journal_failures_total",
		Help:      "Count of accepted blocks the journal failed to persist.",
	})

	minerChainLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "chain_length",
		Help:      "Number of blocks in the in-memory chain.",
	})
)

// Miner tracks metrics for the mining flow.
type Miner struct{}

// NewMiner creates a Miner metrics collector.
func NewMiner() *Miner {
	return &Miner{}
}

// ObserveMine records a mining attempt. A rejected attempt carries its
// compliance reason and a nil error; an accepted one carries COMPLIANT.
func (m Miner) ObserveMine(reason model.ReasonCode, err error, started time.Time) {
	status := statusOf(err)
	if reason == "" {
		reason = "unknown"
	}
	minerMineTotal.WithLabelValues(string(reason), status).Inc()
	minerMineDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

func (m Miner) ObserveJournalFailure() {
	minerJournalFailuresTotal.Inc()
}

// SetChainLength publishes the current chain length.
func (m Miner) SetChainLength(n int) {
	minerChainLength.Set(float64(n))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
