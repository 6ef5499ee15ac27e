package wheel

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2026-01-15", NewDate(2026, time.January, 15), false},
		{"2026-2-7", NewDate(2026, time.February, 7), false},
		{"2026-02-07T10:30:00Z", NewDate(2026, time.February, 7), false},
		{"invalid-date", Date{}, true},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-2w", today.Add(-14), false},
		{"+1y", NewDate(today.Year()+1, today.Month(), today.Day()), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && actual != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	from := MustParse("2026-01-15")
	to := MustParse("2026-02-13")
	if got := to.DaysSince(from); got != 29 {
		t.Errorf("DaysSince() = %d, want 29", got)
	}
	if got := from.DaysSince(to); got != -29 {
		t.Errorf("DaysSince() = %d, want -29", got)
	}
	// normalization across month boundaries
	if got := NewDate(2026, time.January, 32); got != NewDate(2026, time.February, 1) {
		t.Errorf("NewDate normalization = %v", got)
	}
}
