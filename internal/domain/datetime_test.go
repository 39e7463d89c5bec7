package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateTime_AcceptedShapes(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2099-01-01T10:00:00", time.Date(2099, 1, 1, 10, 0, 0, 0, time.Local)},
		{"2099-01-01T10:00", time.Date(2099, 1, 1, 10, 0, 0, 0, time.Local)},
		{"2099-01-01T10:00:00.500000", time.Date(2099, 1, 1, 10, 0, 0, 500000000, time.Local)},
		{"2099-01-01", time.Date(2099, 1, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tc := range tests {
		dt, err := ParseDateTime(tc.input)
		if err != nil {
			t.Fatalf("ParseDateTime(%q) error: %v", tc.input, err)
		}
		if !dt.Time().Equal(tc.want) {
			t.Fatalf("ParseDateTime(%q) = %v, want %v", tc.input, dt.Time(), tc.want)
		}
	}
}

func TestParseDateTime_Rejected(t *testing.T) {
	for _, input := range []string{
		"",
		"not-a-date",
		"2099-13-01T10:00:00",
		"2099-01-32T10:00:00",
		"01/02/2099 10:00",
		"2099-01-01 10:00:00",
	} {
		if _, err := ParseDateTime(input); err == nil {
			t.Fatalf("ParseDateTime(%q) succeeded, want error", input)
		}
	}
}

// Timestamps with differing precision name the same instant even though they
// differ lexicographically; ordering must come from the parsed instant, not
// the string.
func TestDateTime_ComparisonIgnoresStringShape(t *testing.T) {
	a, err := ParseDateTime("2099-01-01T10:00:00")
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}
	b, err := ParseDateTime("2099-01-01T10:00")
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("%v and %v should be equal instants", a, b)
	}
	// Lexicographically "10:00" < "10:00:00", but neither instant precedes
	// the other.
	if a.Before(b) || b.Before(a) {
		t.Fatalf("neither %v nor %v should be Before the other", a, b)
	}

	c, err := ParseDateTime("2099-01-01T10:00:00.100000")
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}
	if !a.Before(c) {
		t.Fatalf("%v should be before %v", a, c)
	}
}

func TestDateTime_JSONRoundTrip(t *testing.T) {
	dt, err := ParseDateTime("2099-01-01T10:00")
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}

	b, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(b) != `"2099-01-01T10:00:00"` {
		t.Fatalf("marshal = %s, want %q", b, "2099-01-01T10:00:00")
	}

	var back DateTime
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(dt) {
		t.Fatalf("round trip = %v, want %v", back, dt)
	}
}

func TestDateTime_UnmarshalRejectsGarbage(t *testing.T) {
	var dt DateTime
	if err := json.Unmarshal([]byte(`"yesterday"`), &dt); err == nil {
		t.Fatalf("expected error")
	}
	if err := json.Unmarshal([]byte(`null`), &dt); err == nil {
		t.Fatalf("expected error for null")
	}
}
