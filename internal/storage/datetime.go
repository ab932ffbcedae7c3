package storage

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// taggedDate is the wire form a DateTime takes inside stored JSON. The tag
// keeps date values distinguishable from plain strings across a round trip.
type taggedDate struct {
	Kind string `json:"__kind"`
	ISO  string `json:"iso"`
}

const dateKind = "date"

// isoDatePattern matches bare ISO-8601 timestamps. Old payloads written
// before tagging sometimes carry dates as plain strings; decode accepts
// those defensively.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

// DateTime is a time.Time that serializes as a tagged structure so the
// string-only store can round-trip it with type identity intact. Use
// *DateTime for nullable date fields.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t, normalized to UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.UTC()}
}

// NewDateTimePtr wraps t as a nullable DateTime.
func NewDateTimePtr(t time.Time) *DateTime {
	d := NewDateTime(t)
	return &d
}

// MarshalJSON encodes the value as {"__kind":"date","iso":…}.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedDate{
		Kind: dateKind,
		ISO:  d.UTC().Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON accepts the tagged form, or, defensively, a bare ISO-8601
// string.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var tagged taggedDate
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Kind == dateKind {
		t, err := time.Parse(time.RFC3339Nano, tagged.ISO)
		if err != nil {
			return fmt.Errorf("invalid date payload %q: %w", tagged.ISO, err)
		}
		d.Time = t.UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil && isoDatePattern.MatchString(s) {
		t, err := parseISO(s)
		if err != nil {
			return fmt.Errorf("invalid date string %q: %w", s, err)
		}
		d.Time = t.UTC()
		return nil
	}

	return fmt.Errorf("value %s is not a date", string(data))
}

func parseISO(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Timestamps without an explicit offset are taken as UTC.
	return time.Parse("2006-01-02T15:04:05", s)
}

// Equal reports whether d and other represent the same instant.
func (d DateTime) Equal(other DateTime) bool {
	return d.Time.Equal(other.Time)
}
