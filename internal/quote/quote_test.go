package quote

import (
	"testing"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
)

func TestGetIsDeterministicPerDay(t *testing.T) {
	p := NewProvider()
	date := time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC)
	sameDayLater := time.Date(2025, 3, 2, 22, 0, 0, 0, time.UTC)

	first, err := p.Get(constants.QuoteEvening, date)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := p.Get(constants.QuoteEvening, sameDayLater)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first.Text != second.Text {
		t.Errorf("same-day quotes differ: %q vs %q", first.Text, second.Text)
	}

	nextDay, err := p.Get(constants.QuoteEvening, date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if nextDay.Text == first.Text {
		t.Errorf("consecutive days picked the same quote: %q", nextDay.Text)
	}
}

func TestGetRejectsUnknownKind(t *testing.T) {
	if _, err := NewProvider().Get("afternoon", time.Now()); err == nil {
		t.Error("Get() error = nil for unknown kind")
	}
}
