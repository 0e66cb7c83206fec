package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the layout used when encoding dates: RFC 3339 with
// millisecond precision, as the server emits them.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrMissingFraction is returned when a date string lacks fractional seconds.
var ErrMissingFraction = errors.New("timestamp has no fractional seconds")

// Timestamp is a date crossing the API boundary. Decoding is strict: the value
// must be RFC 3339 and must carry fractional seconds. No other layout is
// accepted.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s under the strict policy.
func ParseTimestamp(s string) (Timestamp, error) {
	// "2006-01-02T15:04:05" is 19 bytes; the fraction separator must follow.
	if len(s) < 21 || s[19] != '.' {
		return Timestamp{}, fmt.Errorf("parsing %q: %w", s, ErrMissingFraction)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

// String formats the timestamp with TimestampLayout in UTC.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var _ json.Marshaler = Timestamp{}
var _ json.Unmarshaler = &Timestamp{}
