package compliance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/google/uuid"
)

const (
	attestationSchema = "attestation.v1"
	canonicalization  = "JCS-like"
	hashAlg           = "SHA-256"
)

// Issuer turns a payload into a signed attestation after checking identity,
// freshness and environmental coherence.
type Issuer struct {
	identity IdentityProvider
	oracle   WeatherOracle
	signer   Signer
	policy   Policy
	newID    func() string
}

// NewIssuer builds an Issuer. All backends are required.
func NewIssuer(identity IdentityProvider, oracle WeatherOracle, signer Signer, policy Policy) (*Issuer, error) {
	if identity == nil {
		return nil, errors.New("identity provider is required")
	}
	if oracle == nil {
		return nil, errors.New("weather oracle is required")
	}
	if signer == nil {
		return nil, errors.New("signer is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{
		identity: identity,
		oracle:   oracle,
		signer:   signer,
		policy:   policy,
		newID:    uuid.NewString,
	}, nil
}

// Issue evaluates p at now. Policy failures come back as a result with OK set
// to false; only backend errors are returned as errors.
func (i *Issuer) Issue(ctx context.Context, p model.AttestationPayload, now time.Time) (model.ComplianceResult, error) {
	valid, err := i.identity.VerifySubject(ctx, p.Signer)
	if err != nil {
		return model.ComplianceResult{}, fmt.Errorf("verify subject %q: %w", p.Signer, err)
	}
	if !valid {
		return reject(model.ReasonIdentityInvalid, map[string]any{"subjectId": p.Signer}), nil
	}

	ts, reason := ParseTimestamp(p.Timestamp)
	if reason != "" {
		return reject(reason, map[string]any{"timestamp": p.Timestamp}), nil
	}
	age := now.Sub(ts)
	if age > i.policy.MaxAge {
		return reject(model.ReasonStaleTimestamp, map[string]any{
			"ageSeconds":    int64(age / time.Second),
			"maxAgeSeconds": int64(i.policy.MaxAge / time.Second),
		}), nil
	}

	env, err := VerifyEnvironment(ctx, i.oracle, i.policy, p)
	if err != nil {
		return model.ComplianceResult{}, err
	}
	if !env.Coherent {
		return reject(model.ReasonOracleDisagreement, env.evidence()), nil
	}

	doc := i.document(p, env, age)
	digest, err := codec.Digest(doc)
	if err != nil {
		return model.ComplianceResult{}, fmt.Errorf("digest attestation: %w", err)
	}
	sig, err := i.signer.SignHexDigest(ctx, digest)
	if err != nil {
		return model.ComplianceResult{}, fmt.Errorf("sign attestation: %w", err)
	}

	doc["integrity"] = map[string]any{
		"canonicalization": canonicalization,
		"hashAlg":          hashAlg,
		"digestHex":        digest,
	}
	doc["signature"] = map[string]any{
		"alg":   i.policy.SignatureAlg,
		"keyId": i.policy.KeyID,
		"sig":   sig,
	}
	return model.ComplianceResult{OK: true, Reason: model.ReasonCompliant, Evidence: doc}, nil
}

func (i *Issuer) document(p model.AttestationPayload, env EnvironmentReport, age time.Duration) map[string]any {
	return map[string]any{
		"schema":        attestationSchema,
		"attestationId": i.newID(),
		"subject": map[string]any{
			"subjectId": p.Signer,
			"deviceId":  p.DeviceID,
		},
		"context": map[string]any{
			"timestampUTC": p.Timestamp,
			"geo":          map[string]any{"lat": p.Latitude, "lon": p.Longitude},
			"device": map[string]any{
				"compassDeg": p.CompassOrientation,
				"ambientLux": p.AmbientLux,
				"nonce":      p.Nonce,
				"zkpHash":    p.ZKPHash,
			},
			"environment": map[string]any{
				"uvIndex": p.UVIndex,
				"weather": env.OracleWeather,
			},
		},
		"verification": map[string]any{
			"coherent":   true,
			"riskScore":  env.RiskScore,
			"ageSeconds": int64(age / time.Second),
		},
	}
}

func reject(reason model.ReasonCode, evidence map[string]any) model.ComplianceResult {
	if evidence == nil {
		evidence = map[string]any{}
	}
	evidence["reason"] = string(reason)
	return model.ComplianceResult{OK: false, Reason: reason, Evidence: evidence}
}
