// Package status derives the activity state of a record from a free-text
// operational label and an end date.
package status

import (
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/sheetdiff/pkg/record"
)

// State is the binary activity state of a record.
type State uint8

// Activity states. The zero value is Active.
const (
	Active State = iota
	Inactive
)

// String returns "Active" or "Inactive".
func (s State) String() string {
	if s == Inactive {
		return "Inactive"
	}
	return "Active"
}

// closedMarker marks a record as no longer operating when found in the
// status text, case-insensitively.
const closedMarker = "close"

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Classifier evaluates activity against a fixed reference time, so results
// are reproducible across runs.
type Classifier struct {
	now utc.Time
}

// NewClassifier returns a classifier that compares dates against now.
func NewClassifier(now utc.Time) Classifier {
	return Classifier{now: now}
}

// Now returns the reference time.
func (c Classifier) Now() utc.Time {
	return c.now
}

// Classify applies the rules in order:
//  1. text contains "close" (any case) -> Inactive
//  2. date parses and is strictly before the reference time -> Inactive
//  3. otherwise Active
//
// An unparseable date is treated as no date.
func (c Classifier) Classify(text, date record.Value) State {
	if strings.Contains(strings.ToLower(text.Normalized()), closedMarker) {
		return Inactive
	}
	if t, ok := ParseDate(date); ok && t.Time.Before(c.now.Time) {
		return Inactive
	}
	return Active
}

// ParseDate extracts a date from a value. Date values are used as is,
// strings are parsed against the known layouts. Numbers, nulls and
// unparseable text yield false.
func ParseDate(v record.Value) (utc.Time, bool) {
	switch v.Kind() {
	case record.KindDate:
		t, _ := v.Time()
		return utc.New(t), true
	case record.KindString:
		s := v.Normalized()
		if s == "" {
			return utc.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := utc.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return utc.Time{}, false
}
