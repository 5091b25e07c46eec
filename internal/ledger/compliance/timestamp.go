package compliance

import (
	"strings"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

var (
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	// zonedLayouts pairs every naive date-time layout with an extended
	// (+07:00) and a basic (+0700) offset, both also accepting Z.
	zonedLayouts = withZones(naiveLayouts[:4], "Z07:00", "Z0700")
)

func withZones(layouts []string, zones ...string) []string {
	out := make([]string, 0, len(layouts)*len(zones))
	for _, layout := range layouts {
		for _, zone := range zones {
			out = append(out, layout+zone)
		}
	}
	return out
}

// ParseTimestamp parses an ISO-8601 timestamp that must carry a zone. Text that
// would be a valid timestamp without its zone yields
// TIMESTAMP_MISSING_TIMEZONE; anything else is INVALID_TIMESTAMP_FORMAT.
func ParseTimestamp(s string) (time.Time, model.ReasonCode) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, ""
		}
	}
	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, model.ReasonTimestampMissingTimezone
		}
	}
	return time.Time{}, model.ReasonInvalidTimestampFormat
}

// FormatTimestamp renders t in the header timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// isStale reports whether ts is older than maxAge at now.
func isStale(ts, now time.Time, maxAge time.Duration) bool {
	return now.Sub(ts) > maxAge
}
