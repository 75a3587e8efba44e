package identity

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/cadastro/pkg/constants"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// SystemClock reads the current time in UTC.
func SystemClock() time.Time {
	return utc.Now().Time
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Timestamp formats t as an ISO-8601 UTC timestamp with millisecond precision,
// e.g. 2024-05-01T13:45:00.000Z.
func Timestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampLayout)
}

// Date formats the date portion of t in UTC, e.g. 2024-05-01.
func Date(t time.Time) string {
	return t.UTC().Format(constants.DateLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp as written by Timestamp.
// RFC 3339 variants without milliseconds are accepted too.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(constants.TimestampLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
