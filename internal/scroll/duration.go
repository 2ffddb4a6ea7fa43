package scroll

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is returned when a duration is neither "auto" nor a non-negative time
var ErrInvalidDuration = errors.New("invalid scroll duration")

// Duration is either a fixed animation length or "auto", which derives the
// length from the scroll distance and the configured speed
type Duration struct {
	Value time.Duration
	Auto  bool
}

var (
	// Instant applies the scroll position immediately
	Instant = Duration{}
	// Auto derives the duration from distance and speed
	Auto = Duration{Auto: true}
)

// Seconds builds a fixed duration from fractional seconds
func Seconds(s float64) Duration {
	if s < 0 {
		s = 0
	}
	return Duration{Value: time.Duration(s * float64(time.Second))}
}

// IsInstant reports whether the duration is a fixed zero length
func (d Duration) IsInstant() bool {
	return !d.Auto && d.Value <= 0
}

// ParseDuration accepts "auto", bare seconds ("0.8") or Go durations ("800ms")
func ParseDuration(s string) (Duration, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "auto" {
		return Auto, nil
	}
	if raw == "" {
		return Instant, nil
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if secs < 0 {
			return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return Seconds(secs), nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return Duration{Value: d}, nil
}

// String renders the duration in the form ParseDuration accepts
func (d Duration) String() string {
	if d.Auto {
		return "auto"
	}
	return d.Value.String()
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON accepts `"auto"`, duration strings and bare seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	return d.UnmarshalText(bytes.Trim(data, `"`))
}
