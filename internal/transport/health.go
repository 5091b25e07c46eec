package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/clock"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// LedgerService is the health service name reported alongside the
// server-wide status.
const LedgerService = "complianceledger.Ledger"

// HealthReporter publishes SERVING while the chain validates and
// NOT_SERVING otherwise.
type HealthReporter struct {
	chain  Validator
	server *health.Server
	logger *zap.Logger
	last   bool
}

func NewHealthReporter(chain Validator, logger *zap.Logger) *HealthReporter {
	return &HealthReporter{
		chain:  chain,
		server: health.NewServer(),
		logger: logger,
		last:   true,
	}
}

// Server returns the grpc health service to register.
func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// Check validates the chain once and updates the served status.
func (h *HealthReporter) Check() chain.ValidationResult {
	res := h.chain.Validate()
	status := healthpb.HealthCheckResponse_SERVING
	if !res.Valid {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	if res.Valid != h.last {
		h.logger.Warn("chain health changed", zap.Stringer("result", res))
		h.last = res.Valid
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(LedgerService, status)
	return res
}

// Run checks the chain every interval until ctx is done, then shuts the
// health service down.
func (h *HealthReporter) Run(ctx context.Context, interval time.Duration) {
	defer h.server.Shutdown()
	for {
		h.Check()
		if err := clock.SleepWithContext(ctx, interval); err != nil {
			return
		}
	}
}
