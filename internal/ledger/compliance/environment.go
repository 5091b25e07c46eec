package compliance

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

const minRiskDenominator = 0.0001

// EnvironmentReport compares device readings with the oracle.
type EnvironmentReport struct {
	Coherent      bool
	UVDelta       float64
	OracleUVIndex float64
	OracleWeather string
	CompassOK     bool
	LuxOK         bool
	RiskScore     float64
}

func (r EnvironmentReport) evidence() map[string]any {
	return map[string]any{
		"coherent":      r.Coherent,
		"uvDelta":       r.UVDelta,
		"oracleUvIndex": r.OracleUVIndex,
		"oracleWeather": r.OracleWeather,
		"compassOk":     r.CompassOK,
		"luxOk":         r.LuxOK,
		"riskScore":     r.RiskScore,
	}
}

// VerifyEnvironment looks up the oracle at the payload coordinates and checks
// UV agreement, compass range and a non-negative lux reading.
func VerifyEnvironment(ctx context.Context, oracle WeatherOracle, policy Policy, p model.AttestationPayload) (EnvironmentReport, error) {
	reading, err := oracle.Lookup(ctx, p.Latitude, p.Longitude)
	if err != nil {
		return EnvironmentReport{}, fmt.Errorf("weather oracle lookup: %w", err)
	}

	weather := reading.Weather
	if weather == "" {
		weather = "unknown"
	}
	delta := math.Abs(p.UVIndex - reading.UVIndex)
	report := EnvironmentReport{
		UVDelta:       delta,
		OracleUVIndex: reading.UVIndex,
		OracleWeather: weather,
		CompassOK:     policy.CompassMin <= p.CompassOrientation && p.CompassOrientation <= policy.CompassMax,
		LuxOK:         p.AmbientLux >= 0,
		RiskScore:     RiskScore(delta, policy.MaxUVDelta),
	}
	report.Coherent = delta <= policy.MaxUVDelta && report.CompassOK && report.LuxOK
	return report, nil
}

// RiskScore normalizes a UV delta to [0,1], rounded to four decimals.
func RiskScore(uvDelta, maxUVDelta float64) float64 {
	score := math.Min(uvDelta/math.Max(maxUVDelta, minRiskDenominator), 1)
	return math.Round(score*1e4) / 1e4
}
