package compliance

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"go.uber.org/zap"
)

// Checker is the compliance gate consumed by the mining flow.
type Checker interface {
	PerformCheck(ctx context.Context, now time.Time) (model.ComplianceResult, error)
}

// AttestationChecker collects an attestation, verifies the payload and then
// issues a signed attestation for it.
type AttestationChecker struct {
	source  AttestationSource
	issuer  *Issuer
	policy  Policy
	metrics Metrics
	logger  *zap.Logger
}

// NewAttestationChecker wires a checker from its collaborators.
func NewAttestationChecker(source AttestationSource, issuer *Issuer, metrics Metrics, logger *zap.Logger) (*AttestationChecker, error) {
	if source == nil {
		return nil, errors.New("attestation source is required")
	}
	if issuer == nil {
		return nil, errors.New("issuer is required")
	}
	if metrics == nil {
		return nil, errors.New("compliance metrics is required")
	}
	return &AttestationChecker{
		source:  source,
		issuer:  issuer,
		policy:  issuer.policy,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// PerformCheck runs the pipeline at now.
func (c *AttestationChecker) PerformCheck(ctx context.Context, now time.Time) (res model.ComplianceResult, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveCheck(res.Reason, err, started)
	}()

	payload, err := c.source.Collect(ctx, now)
	if err != nil {
		c.logger.Error("collect attestation failed", zap.Error(err))
		return model.ComplianceResult{}, err
	}

	if reason := VerifyAttestationPayload(payload, c.policy, now); reason != model.ReasonAttestationValid {
		c.logger.Info("attestation payload rejected",
			zap.String("device_id", payload.DeviceID),
			zap.String("reason", string(reason)),
		)
		return reject(reason, map[string]any{
			"deviceId":  payload.DeviceID,
			"timestamp": payload.Timestamp,
		}), nil
	}

	res, err = c.issuer.Issue(ctx, payload, now)
	if err != nil {
		c.logger.Error("issue attestation failed", zap.String("device_id", payload.DeviceID), zap.Error(err))
		return model.ComplianceResult{}, err
	}
	if !res.OK {
		c.logger.Info("attestation rejected",
			zap.String("device_id", payload.DeviceID),
			zap.String("reason", string(res.Reason)),
		)
	}
	return res, nil
}

// StaticChecker returns a fixed result.
type StaticChecker struct {
	Result model.ComplianceResult
}

// NewRejectingChecker returns a checker that always fails with reason.
func NewRejectingChecker(reason model.ReasonCode) StaticChecker {
	return StaticChecker{Result: model.ComplianceResult{OK: false, Reason: reason, Evidence: map[string]any{}}}
}

// NewPassingChecker returns a checker that always passes with evidence.
func NewPassingChecker(evidence map[string]any) StaticChecker {
	if evidence == nil {
		evidence = map[string]any{}
	}
	return StaticChecker{Result: model.ComplianceResult{OK: true, Reason: model.ReasonCompliant, Evidence: evidence}}
}

// PerformCheck implements Checker.
func (c StaticChecker) PerformCheck(context.Context, time.Time) (model.ComplianceResult, error) {
	return c.Result, nil
}
