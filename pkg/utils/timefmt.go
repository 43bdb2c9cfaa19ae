package utils

import (
	"fmt"
	"time"
)

// ProviderTimeLayout is the provider's segment timestamp format: ISO-8601
// local wall-clock time, usually without a zone offset.
const ProviderTimeLayout = "2006-01-02T15:04:05"

// DisplayTimeLayout is the human-readable format used in alerts and in the
// persisted best-found time window.
const DisplayTimeLayout = "2/1/2006 15:04"

// ParseFlightTime parses a provider segment timestamp. Timestamps are kept
// in their given offset, never renormalized to UTC, so differences stay
// wall-clock-safe.
func ParseFlightTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(ProviderTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse flight time %q: %w", value, err)
	}
	return t, nil
}

// FormatTimeWindow renders the departure/arrival window of a segment for
// display. Unparseable timestamps are passed through as-is rather than
// dropped.
func FormatTimeWindow(departure, arrival string) string {
	return fmt.Sprintf("departure: %s, arrival: %s", displayTime(departure), displayTime(arrival))
}

func displayTime(value string) string {
	t, err := ParseFlightTime(value)
	if err != nil {
		return value
	}
	return t.Format(DisplayTimeLayout)
}
