package compliance

import (
	"context"
	"strings"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/google/uuid"
)

// Demo adapters. They make no network calls and must be replaced by real
// backends in a deployment.

// StaticIdentityProvider accepts any subject with the configured prefix.
type StaticIdentityProvider struct {
	Prefix string
}

// VerifySubject implements IdentityProvider.
func (p StaticIdentityProvider) VerifySubject(_ context.Context, subjectID string) (bool, error) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = "notary-"
	}
	return subjectID != "" && strings.HasPrefix(subjectID, prefix), nil
}

// StaticWeatherOracle returns the same reading everywhere.
type StaticWeatherOracle struct {
	Reading model.WeatherReading
}

// NewStaticWeatherOracle returns a sunny oracle with UV index 6.
func NewStaticWeatherOracle() StaticWeatherOracle {
	return StaticWeatherOracle{Reading: model.WeatherReading{UVIndex: 6, Weather: "Sunny"}}
}

// Lookup implements WeatherOracle.
func (o StaticWeatherOracle) Lookup(context.Context, float64, float64) (model.WeatherReading, error) {
	return o.Reading, nil
}

// DeterministicSigner is a hash-based stand-in for a real signature scheme.
type DeterministicSigner struct{}

// SignHexDigest implements Signer.
func (DeterministicSigner) SignHexDigest(_ context.Context, hexDigest string) (string, error) {
	return codec.DigestString("sig:" + hexDigest), nil
}

// DemoAttestationSource reports a fixed outdoor reading stamped at now.
type DemoAttestationSource struct {
	DeviceID string
	Signer   string
}

// Collect implements AttestationSource.
func (s DemoAttestationSource) Collect(_ context.Context, now time.Time) (model.AttestationPayload, error) {
	nonce := uuid.NewString()
	return model.AttestationPayload{
		DeviceID:           s.DeviceID,
		Timestamp:          FormatTimestamp(now),
		Latitude:           49.2827,
		Longitude:          -123.1207,
		CompassOrientation: 270,
		AmbientLux:         45000,
		UVIndex:            6,
		Nonce:              nonce,
		ZKPHash:            codec.DigestString(s.DeviceID + ":" + nonce),
		Signer:             s.Signer,
		Signature:          codec.DigestString("sig:" + nonce),
	}, nil
}
