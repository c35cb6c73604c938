package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Paris")
	in := time.Date(2025, 3, 2, 23, 45, 12, 500, loc)
	got := StartOfDay(in)
	want := time.Date(2025, 3, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{
			name: "forward across month boundary",
			in:   time.Date(2025, 2, 27, 14, 0, 0, 0, time.UTC),
			n:    3,
			want: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "zero days normalizes to midnight",
			in:   time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC),
			n:    0,
			want: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "negative days",
			in:   time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC),
			n:    -2,
			want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddDays() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameCalendarDate(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same date different times",
			a:    time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 2, 23, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "different dates",
			a:    time.Date(2025, 3, 2, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameCalendarDate(tt.a, tt.b); got != tt.want {
				t.Errorf("SameCalendarDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWholeDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
		want    int
	}{
		{
			name:    "ten days apart ignoring time of day",
			earlier: time.Date(2025, 2, 20, 23, 0, 0, 0, time.UTC),
			later:   time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC),
			want:    10,
		},
		{
			name:    "same day",
			earlier: time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC),
			later:   time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC),
			want:    0,
		},
		{
			name:    "negative when later precedes earlier",
			earlier: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			later:   time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			want:    -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WholeDaysBetween(tt.earlier, tt.later); got != tt.want {
				t.Errorf("WholeDaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := At(date, "07:30")
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	want := time.Date(2025, 3, 2, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}

	if _, err := At(date, "25:99"); err == nil {
		t.Error("At() expected error for invalid clock time")
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{name: "empty is local", timezone: "", want: true},
		{name: "Local keyword", timezone: "Local", want: true},
		{name: "valid IANA name", timezone: "Europe/Paris", want: true},
		{name: "invalid name", timezone: "Invalid/Timezone", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
