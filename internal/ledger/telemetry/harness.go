// Package telemetry simulates spoofed and replayed sensor readings against a
// trusted reference so that detection rules can be exercised offline.
package telemetry

import (
	"math"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// Reason codes produced by Policy.Verify.
const (
	ReasonGPSDriftExceeded model.ReasonCode = "GPS_DRIFT_EXCEEDED"
	ReasonStaleTelemetry   model.ReasonCode = "STALE_TELEMETRY"
)

// Reading is a single sensor sample.
type Reading struct {
	Latitude           float64
	Longitude          float64
	UVIndex            int
	AmbientLux         int
	CompassOrientation int
	Timestamp          time.Time
}

// Trusted returns the reference reading at now.
func Trusted(now time.Time) Reading {
	return Reading{
		Latitude:           49.2827,
		Longitude:          -123.1207,
		UVIndex:            6,
		AmbientLux:         45000,
		CompassOrientation: 270,
		Timestamp:          now.UTC(),
	}
}

// Spoofer derives a tampered reading from a trusted one.
type Spoofer interface {
	Apply(r Reading) Reading
}

// GPSSpoofer shifts the reported position.
type GPSSpoofer struct {
	LatOffset float64
	LonOffset float64
}

// Apply implements Spoofer.
func (s GPSSpoofer) Apply(r Reading) Reading {
	r.Latitude += s.LatOffset
	r.Longitude += s.LonOffset
	return r
}

// Replay backdates a reading, as if an old capture were resent.
type Replay struct {
	Delay time.Duration
}

// Apply implements Spoofer.
func (s Replay) Apply(r Reading) Reading {
	r.Timestamp = r.Timestamp.Add(-s.Delay)
	return r
}

// Policy bounds position drift and reading age relative to the trusted sample.
type Policy struct {
	MaxDriftDeg float64
	MaxAge      time.Duration
}

// DefaultPolicy allows 0.01 degrees of drift and five minutes of lag.
func DefaultPolicy() Policy {
	return Policy{MaxDriftDeg: 0.01, MaxAge: 5 * time.Minute}
}

// Verify compares observed with trusted. Drift is checked before age.
func (p Policy) Verify(observed, trusted Reading) (bool, model.ReasonCode) {
	if math.Abs(observed.Latitude-trusted.Latitude) > p.MaxDriftDeg ||
		math.Abs(observed.Longitude-trusted.Longitude) > p.MaxDriftDeg {
		return false, ReasonGPSDriftExceeded
	}
	if trusted.Timestamp.Sub(observed.Timestamp) > p.MaxAge {
		return false, ReasonStaleTelemetry
	}
	return true, model.ReasonCompliant
}

// Scenario is one harness case.
type Scenario struct {
	Name    string
	Spoofer Spoofer
}

// Result is the verdict for a scenario.
type Result struct {
	Scenario string
	OK       bool
	Reason   model.ReasonCode
}

// DefaultScenarios are the baseline, GPS spoof and sensor replay cases.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "baseline"},
		{Name: "gps_spoof", Spoofer: GPSSpoofer{LatOffset: 0.03, LonOffset: -0.04}},
		{Name: "sensor_replay", Spoofer: Replay{Delay: 25 * time.Minute}},
	}
}

// Run evaluates each scenario against the trusted reading at now, in order.
func Run(now time.Time, policy Policy, scenarios []Scenario) []Result {
	trusted := Trusted(now)
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		observed := trusted
		if sc.Spoofer != nil {
			observed = sc.Spoofer.Apply(trusted)
		}
		ok, reason := policy.Verify(observed, trusted)
		results = append(results, Result{Scenario: sc.Name, OK: ok, Reason: reason})
	}
	return results
}

// RunHarness runs the default scenarios with the default policy.
func RunHarness(now time.Time) []Result {
	return Run(now, DefaultPolicy(), DefaultScenarios())
}
