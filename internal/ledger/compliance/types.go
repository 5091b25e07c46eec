package compliance

import (
	"context"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// IdentityProvider decides whether a subject is a known, valid identity.
	IdentityProvider interface {
		VerifySubject(ctx context.Context, subjectID string) (bool, error)
	}
	// WeatherOracle reports environmental conditions at a coordinate.
	WeatherOracle interface {
		Lookup(ctx context.Context, latitude, longitude float64) (model.WeatherReading, error)
	}
	// Signer signs a hex digest.
	Signer interface {
		SignHexDigest(ctx context.Context, hexDigest string) (string, error)
	}
	// AttestationSource yields the attestation a check evaluates.
	AttestationSource interface {
		Collect(ctx context.Context, now time.Time) (model.AttestationPayload, error)
	}
	// Metrics observes completed checks.
	Metrics interface {
		ObserveCheck(reason model.ReasonCode, err error, started time.Time)
	}
)
