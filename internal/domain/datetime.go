package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// canonicalLayout is how appointment times are rendered and persisted:
// ISO-8601 with no zone offset, second precision.
const canonicalLayout = "2006-01-02T15:04:05"

// parseLayouts accepts the same shapes the booking clients send. Fractional
// seconds are optional in the first layout.
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DateTime is a timezone-naive wall-clock instant. Appointment times carry no
// offset, so values are interpreted in the server's local time and must be
// compared as parsed instants, never as strings: "10:00:00" and "10:00" name
// the same instant but differ lexicographically.
type DateTime struct {
	t time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t: t.Round(0)}
}

// ParseDateTime parses an ISO-8601 local timestamp such as
// "2099-01-01T10:00:00".
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return DateTime{t: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", s)
}

func (d DateTime) Time() time.Time { return d.t }

func (d DateTime) IsZero() bool { return d.t.IsZero() }

func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }

func (d DateTime) Equal(o DateTime) bool { return d.t.Equal(o.t) }

func (d DateTime) Sub(o DateTime) time.Duration { return d.t.Sub(o.t) }

func (d DateTime) String() string { return d.t.Format(canonicalLayout) }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return errors.New("datetime is required")
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
