package metrics

import (
	"errors"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/escrow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	escrowEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "escrow",
		Name:      "events_total",
		Help:      "Count of escrow operations by outcome.",
	}, []string{"event", "code"})

	escrowAmountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "escrow",
		Name:      "amount_total",
		Help:      "Sum of amounts moved by successful escrow operations.",
	}, []string{"event"})
)

// Escrow tracks metrics for the honesty escrow.
type Escrow struct{}

// NewEscrow creates an Escrow metrics collector.
func NewEscrow() *Escrow {
	return &Escrow{}
}

// ObserveEscrowEvent records an escrow operation. Failures are labelled
// with their escrow error code.
func (m Escrow) ObserveEscrowEvent(event string, amount uint64, err error) {
	code := "ok"
	if err != nil {
		code = "error"
		var escrowErr *escrow.Error
		if errors.As(err, &escrowErr) {
			code = string(escrowErr.Code)
		}
	}
	escrowEventsTotal.WithLabelValues(event, code).Inc()
	if err == nil {
		escrowAmountTotal.WithLabelValues(event).Add(float64(amount))
	}
}
