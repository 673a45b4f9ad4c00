// Package timecodec unifies the time representations that cross the
// scheduling boundary: provider-supplied text fields, raw epoch values,
// and the canonical "HH:mm" strings persisted on vehicles and passengers.
// Every time value is normalized here immediately on ingestion; nothing
// deeper in the system sees a non-canonical string.
package timecodec

import (
	"strings"
	"time"
)

// CanonicalLayout is the 24-hour zero-padded clock format used for all
// persisted and compared times.
const CanonicalLayout = "15:04"

// Accepted input layouts, tried in order. Parsing is strict per layout but
// lenient overall: unrecognized text reports !ok instead of failing the run.
var parseLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"3:04 PM",
	"3:04 pm",
	"15:04:05",
	"15:04",
}

// Parse interprets text as a date-time or a bare clock value.
// Clock-only inputs yield a zero-date time; anchor them with OnDate before
// doing arithmetic against "now".
func Parse(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Canonical renders a time as the canonical "HH:mm" string.
func Canonical(t time.Time) string {
	return t.Format(CanonicalLayout)
}

// Normalize parses text and re-renders it canonically. Idempotent for any
// parseable input.
func Normalize(text string) (string, bool) {
	t, ok := Parse(text)
	if !ok {
		return "", false
	}
	return Canonical(t), true
}

// OnDate re-anchors the clock portion of t onto ref's calendar date and
// location. Used to turn a parsed time-of-day into a concrete instant.
func OnDate(t, ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), t.Second(), 0, ref.Location())
}

// EnsureFuture pushes t forward by whole days until it is strictly after
// now. Schedules are always computed for an upcoming commute, so a
// time-of-day that already passed today means tomorrow (or later).
func EnsureFuture(t, now time.Time) time.Time {
	for !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// ToEpochSeconds converts t to Unix epoch seconds for provider query
// parameters.
func ToEpochSeconds(t time.Time) int64 {
	return t.Unix()
}

// FromEpochSeconds converts a provider-supplied epoch value back to a time.
func FromEpochSeconds(n int64) time.Time {
	return time.Unix(n, 0)
}

// Minutes converts a fractional minute count to a duration rounded to whole
// minutes. All timetable propagation goes through this single rounding rule
// so forward and backward passes stay consistent at "HH:mm" precision.
func Minutes(m float64) time.Duration {
	return time.Duration(m+0.5) * time.Minute
}
