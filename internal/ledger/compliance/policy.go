// Package compliance evaluates attestations before a block may be mined.
package compliance

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy holds the thresholds applied to attestations.
type Policy struct {
	// MaxUVDelta is the largest accepted |device UV - oracle UV|.
	MaxUVDelta float64 `yaml:"max_uv_delta"`
	// MaxAge bounds now - attestation time. Equal to MaxAge is still fresh.
	MaxAge        time.Duration `yaml:"max_age"`
	CompassMin    int           `yaml:"compass_min"`
	CompassMax    int           `yaml:"compass_max"`
	MaxUVIndex    float64       `yaml:"max_uv_index"`
	MinAmbientLux float64       `yaml:"min_ambient_lux"`
	KeyID         string        `yaml:"key_id"`
	SignatureAlg  string        `yaml:"signature_alg"`
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MaxUVDelta:    1.0,
		MaxAge:        5 * time.Minute,
		CompassMin:    0,
		CompassMax:    359,
		MaxUVIndex:    11,
		MinAmbientLux: 1000,
		KeyID:         "attestor-key-01",
		SignatureAlg:  "Ed25519",
	}
}

// Validate rejects policies that cannot be evaluated.
func (p Policy) Validate() error {
	switch {
	case p.MaxUVDelta < 0:
		return errors.New("max_uv_delta must not be negative")
	case p.MaxAge < 0:
		return errors.New("max_age must not be negative")
	case p.CompassMin > p.CompassMax:
		return fmt.Errorf("compass range [%d,%d] is empty", p.CompassMin, p.CompassMax)
	}
	return nil
}

// LoadPolicy reads a YAML policy file. Keys missing from the file keep their
// default values.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return policy, nil
}
