package timecodec

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"canonical", "07:35", "07:35", true},
		{"unpadded 12 hour", "7:35 AM", "07:35", true},
		{"lowercase meridiem", "7:35 pm", "19:35", true},
		{"with seconds", "07:35:59", "07:35", true},
		{"full datetime", "2026-08-29 07:35:00", "07:35", true},
		{"iso datetime", "2026-08-29T07:35:00", "07:35", true},
		{"iso with zone", "2026-08-29T07:35:00+03:00", "07:35", true},
		{"surrounding spaces", "  07:35  ", "07:35", true},
		{"empty", "", "", false},
		{"garbage", "half past seven", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"7:35 AM", "07:35:10", "2026-08-29 18:00:00", "23:59"}
	for _, in := range inputs {
		once, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) failed", in)
		}
		twice, ok := Normalize(once)
		if !ok {
			t.Fatalf("Normalize(%q) failed on second pass", once)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestOnDate(t *testing.T) {
	clock, ok := Parse("08:00")
	if !ok {
		t.Fatal("Parse(08:00) failed")
	}

	ref := time.Date(2026, time.August, 29, 14, 30, 0, 0, time.UTC)
	got := OnDate(clock, ref)

	want := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("OnDate = %v, want %v", got, want)
	}
}

func TestEnsureFuture(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"already future",
			time.Date(2026, time.August, 29, 11, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 29, 11, 0, 0, 0, time.UTC),
		},
		{
			"passed today rolls to tomorrow",
			time.Date(2026, time.August, 29, 8, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC),
		},
		{
			"equal to now rolls forward",
			now,
			now.AddDate(0, 0, 1),
		},
		{
			"days in the past",
			time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureFuture(tt.in, now)
			if !got.Equal(tt.want) {
				t.Errorf("EnsureFuture = %v, want %v", got, tt.want)
			}
			if !got.After(now) {
				t.Errorf("EnsureFuture result %v is not after now %v", got, now)
			}
			if got.Hour() != tt.in.Hour() || got.Minute() != tt.in.Minute() {
				t.Errorf("EnsureFuture changed the clock portion: got %v from %v", got, tt.in)
			}
		})
	}
}

func TestEpochRoundTrip(t *testing.T) {
	orig := time.Date(2026, time.August, 29, 7, 45, 12, 0, time.UTC)
	n := ToEpochSeconds(orig)
	back := FromEpochSeconds(n)
	if !back.Equal(orig) {
		t.Errorf("epoch round trip: got %v, want %v", back, orig)
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{0, 0},
		{15, 15 * time.Minute},
		{14.4, 14 * time.Minute},
		{14.6, 15 * time.Minute},
		{0.5, 1 * time.Minute},
	}
	for _, tt := range tests {
		if got := Minutes(tt.in); got != tt.want {
			t.Errorf("Minutes(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
