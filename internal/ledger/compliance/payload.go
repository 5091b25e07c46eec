package compliance

import (
	"strings"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// VerifyAttestationPayload checks that p is complete, fresh and plausible.
// It returns ATTESTATION_VALID or the first failing reason in this order:
// missing fields, missing signature data, timestamp format, timezone,
// freshness, UV limit and low light.
func VerifyAttestationPayload(p model.AttestationPayload, policy Policy, now time.Time) model.ReasonCode {
	if blank(p.DeviceID, p.Timestamp, p.Nonce, p.ZKPHash) {
		return model.ReasonMissingAttestationFields
	}
	if blank(p.Signer, p.Signature) {
		return model.ReasonMissingSignatureData
	}

	ts, reason := ParseTimestamp(p.Timestamp)
	if reason != "" {
		return reason
	}
	if isStale(ts, now, policy.MaxAge) {
		return model.ReasonStaleAttestation
	}

	if p.UVIndex > policy.MaxUVIndex {
		return model.ReasonUVLimitExceeded
	}
	if p.AmbientLux < policy.MinAmbientLux {
		return model.ReasonLowLightEnvironment
	}
	return model.ReasonAttestationValid
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
