// Package dateutil converts between the calendar-day display format
// (zero-padded YYYY-MM-DD) and the moment-in-time values kept in
// storage. Display never fails: any input that cannot be resolved to a
// valid calendar day degrades to an empty string with a structured
// warning, so rendering code can show a blank field instead of
// crashing.
package dateutil

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DisplayLayout is the canonical display format for reminder dates.
const DisplayLayout = "2006-01-02"

// Displayable years. Anything outside this range has no YYYY-MM-DD
// rendering and is treated as invalid.
const (
	minYear = 1
	maxYear = 9999
)

// Value is a date in one of the representations that cross the
// storage/display boundary. Exactly four variants exist: Absent,
// Native, Stamp and ISO.
type Value interface {
	isDateValue()
}

// Absent is a missing date.
type Absent struct{}

// Native wraps an in-process moment. The zero time counts as invalid.
type Native struct {
	Time time.Time
}

// Stamp is the storage representation of a moment: seconds and
// nanoseconds since the Unix epoch.
type Stamp struct {
	Seconds int64
	Nanos   int32
}

// ISO is a raw YYYY-MM-DD string, e.g. from a form submission.
type ISO struct {
	Value string
}

func (Absent) isDateValue() {}
func (Native) isDateValue() {}
func (Stamp) isDateValue()  {}
func (ISO) isDateValue()    {}

// Resolve converts the stamp to a time.Time, rejecting values that
// fall outside the displayable calendar range.
func (s Stamp) Resolve() (time.Time, error) {
	if s.Nanos < 0 || s.Nanos >= int32(time.Second/time.Nanosecond) {
		return time.Time{}, fmt.Errorf("nanos out of range: %d", s.Nanos)
	}
	t := time.Unix(s.Seconds, int64(s.Nanos)).UTC()
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, fmt.Errorf("timestamp out of displayable range: %d", s.Seconds)
	}
	return t, nil
}

// Normalizer formats date values for display. It carries a logger so
// that every degraded conversion leaves a diagnostic trail.
type Normalizer struct {
	log *zap.Logger
}

func NewNormalizer(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Display returns the zero-padded YYYY-MM-DD rendering of v, or ""
// when v is absent or cannot be resolved to a valid calendar day.
// It never panics and never returns an error.
func (n *Normalizer) Display(v Value) string {
	switch d := v.(type) {
	case Absent:
		return ""
	case Native:
		if !validDisplayTime(d.Time) {
			return ""
		}
		return d.Time.Format(DisplayLayout)
	case Stamp:
		t, err := d.Resolve()
		if err != nil {
			n.log.Warn("dateutil: unresolvable storage timestamp",
				zap.Int64("seconds", d.Seconds),
				zap.Int32("nanos", d.Nanos),
				zap.Error(err))
			return ""
		}
		return t.Format(DisplayLayout)
	case ISO:
		t, err := ParseDisplay(d.Value)
		if err != nil {
			n.log.Warn("dateutil: malformed date string",
				zap.String("value", d.Value),
				zap.Error(err))
			return ""
		}
		return t.Format(DisplayLayout)
	default:
		// nil or an unknown variant.
		n.log.Warn("dateutil: unsupported date value",
			zap.Any("value", v))
		return ""
	}
}

// ParseDisplay parses a strict zero-padded YYYY-MM-DD string into the
// moment at midnight UTC on that day. Unpadded fields, wrong
// separators and calendar-invalid combinations (month 13, Feb 30) are
// rejected.
func ParseDisplay(s string) (time.Time, error) {
	if len(s) != len(DisplayLayout) {
		return time.Time{}, fmt.Errorf("date %q does not match YYYY-MM-DD", s)
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			if r != '-' {
				return time.Time{}, fmt.Errorf("date %q does not match YYYY-MM-DD", s)
			}
			continue
		}
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("date %q does not match YYYY-MM-DD", s)
		}
	}
	// time.Parse performs real calendar validation on the padded form.
	t, err := time.Parse(DisplayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return t, nil
}

func validDisplayTime(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.Year() >= minYear && t.Year() <= maxYear
}

// Valid reports whether t is a storable moment: non-zero and within
// the displayable calendar range.
func Valid(t time.Time) bool {
	return validDisplayTime(t)
}
