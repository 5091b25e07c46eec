package model

// AttestationPayload is a device-reported claim about identity and environment.
type AttestationPayload struct {
	DeviceID           string  `json:"device_id"`
	Timestamp          string  `json:"timestamp"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	CompassOrientation int     `json:"compass_orientation"`
	AmbientLux         float64 `json:"ambient_lux"`
	UVIndex            float64 `json:"uv_index"`
	Nonce              string  `json:"nonce"`
	ZKPHash            string  `json:"zkp_hash"`
	Signer             string  `json:"signer"`
	Signature          string  `json:"signature"`
}

// WeatherReading is an oracle observation for a coordinate.
type WeatherReading struct {
	UVIndex float64
	Weather string
}

// ComplianceResult is the outcome of a compliance check. Evidence is kept for
// auditing and is digested into the block header on success.
type ComplianceResult struct {
	OK       bool
	Reason   ReasonCode
	Evidence map[string]any
}
