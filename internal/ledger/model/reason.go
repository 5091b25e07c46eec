package model

// ReasonCode is a stable string code reported by validation and compliance checks.
type ReasonCode string

// Compliance reason codes.
const (
	ReasonAttestationValid         ReasonCode = "ATTESTATION_VALID"
	ReasonInvalidTimestampFormat   ReasonCode = "INVALID_TIMESTAMP_FORMAT"
	ReasonTimestampMissingTimezone ReasonCode = "TIMESTAMP_MISSING_TIMEZONE"
	ReasonStaleAttestation         ReasonCode = "STALE_ATTESTATION"
	ReasonMissingSignatureData     ReasonCode = "MISSING_SIGNATURE_DATA"
	ReasonMissingAttestationFields ReasonCode = "MISSING_ATTESTATION_FIELDS"
	ReasonUVLimitExceeded          ReasonCode = "UV_LIMIT_EXCEEDED"
	ReasonLowLightEnvironment      ReasonCode = "LOW_LIGHT_ENVIRONMENT"
	ReasonCompliant                ReasonCode = "COMPLIANT"
	ReasonIdentityInvalid          ReasonCode = "E_IDENTITY_INVALID"
	ReasonStaleTimestamp           ReasonCode = "E_STALE_TIMESTAMP"
	ReasonOracleDisagreement       ReasonCode = "E_ORACLE_DISAGREEMENT"
)

// Chain validation reason codes.
const (
	ReasonChainValid       ReasonCode = "CHAIN_VALID"
	ReasonPrevHashMismatch ReasonCode = "PREV_HASH_MISMATCH"
	ReasonMerkleMismatch   ReasonCode = "MERKLE_MISMATCH"
	ReasonHashMismatch     ReasonCode = "HASH_MISMATCH"
	ReasonIndexMismatch    ReasonCode = "INDEX_MISMATCH"
)

// Escrow reason codes.
const (
	ReasonInvalidReward  ReasonCode = "INVALID_REWARD"
	ReasonAlreadySlashed ReasonCode = "ALREADY_SLASHED"
	ReasonUnauthorized   ReasonCode = "UNAUTHORIZED"
	ReasonLockActive     ReasonCode = "LOCK_ACTIVE"
	ReasonUnknownHeight  ReasonCode = "UNKNOWN_HEIGHT"
)

// ComplianceReasons lists the closed set of codes a compliance check may report.
var ComplianceReasons = []ReasonCode{
	ReasonAttestationValid,
	ReasonInvalidTimestampFormat,
	ReasonTimestampMissingTimezone,
	ReasonStaleAttestation,
	ReasonMissingSignatureData,
	ReasonMissingAttestationFields,
	ReasonUVLimitExceeded,
	ReasonLowLightEnvironment,
	ReasonCompliant,
	ReasonIdentityInvalid,
	ReasonStaleTimestamp,
	ReasonOracleDisagreement,
}

// IsComplianceReason reports whether code belongs to the compliance set.
func IsComplianceReason(code ReasonCode) bool {
	for _, c := range ComplianceReasons {
		if c == code {
			return true
		}
	}
	return false
}
