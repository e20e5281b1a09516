package series

import (
	"testing"
	"time"

	"priceboard/internal/model"
)

func slot(h, m int) time.Time {
	return time.Date(2026, 2, 16, h, m, 0, 0, time.UTC)
}

func TestClassifyBoundaries(t *testing.T) {
	th := Thresholds{Low: 8.0, Mid: 15.0}
	tests := []struct {
		price float64
		want  model.Tier
	}{
		{0.0, model.TierLow},
		{7.99, model.TierLow},
		{8.0, model.TierMid}, // lower bound inclusive
		{14.99, model.TierMid},
		{15.0, model.TierHigh}, // lower bound inclusive
		{42.0, model.TierHigh},
		{-3.5, model.TierLow}, // negative prices happen on windy days
	}
	for _, tt := range tests {
		if got := th.Classify(tt.price); got != tt.want {
			t.Errorf("Classify(%.2f) = %s, want %s", tt.price, got, tt.want)
		}
	}
}

func TestPriceAtWithinSlot(t *testing.T) {
	s := New([]model.PricePoint{{Start: slot(12, 0), Price: 9.5}})

	for _, m := range []int{0, 7, 14} {
		if price, ok := s.PriceAt(slot(12, m)); !ok || price != 9.5 {
			t.Errorf("PriceAt(12:%02d) = %.2f, %v; want 9.5, true", m, price, ok)
		}
	}
	if _, ok := s.PriceAt(slot(12, 15)); ok {
		t.Error("PriceAt(12:15) should be undefined, slot interval is half-open")
	}
	if _, ok := s.PriceAt(slot(11, 59)); ok {
		t.Error("PriceAt(11:59) should be undefined")
	}
}

func TestPriceAtNilSeries(t *testing.T) {
	var s *Series
	if _, ok := s.PriceAt(slot(12, 0)); ok {
		t.Error("nil series should report every slot undefined")
	}
	if s.Len() != 0 {
		t.Error("nil series should have zero length")
	}
}

func TestDedupeLaterWins(t *testing.T) {
	// Upstream may republish today's slots alongside tomorrow's; either
	// ordering must resolve to the later-listed point.
	a := model.PricePoint{Start: slot(12, 0), Price: 5.0}
	b := model.PricePoint{Start: slot(12, 0), Price: 7.0}

	s1 := New([]model.PricePoint{a, b})
	if price, _ := s1.PriceAt(slot(12, 0)); price != 7.0 {
		t.Errorf("order a,b: got %.1f, want 7.0", price)
	}
	s2 := New([]model.PricePoint{b, a})
	if price, _ := s2.PriceAt(slot(12, 0)); price != 5.0 {
		t.Errorf("order b,a: got %.1f, want 5.0", price)
	}
	if s1.Len() != 1 || s2.Len() != 1 {
		t.Errorf("duplicate slot should collapse to one point, got %d and %d", s1.Len(), s2.Len())
	}
}

func TestDailyStats(t *testing.T) {
	s := New([]model.PricePoint{
		{Start: slot(0, 0), Price: 4.0},
		{Start: slot(0, 15), Price: 6.0},
		{Start: slot(12, 0), Price: 18.0},
		{Start: slot(12, 15), Price: 12.0},
		// A point on the next day must not leak into today's stats.
		{Start: time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC), Price: 100.0},
	})

	stats, ok := s.DailyStats(slot(9, 30))
	if !ok {
		t.Fatal("expected stats for a day with points")
	}
	if stats.Min != 4.0 {
		t.Errorf("Min = %.1f, want 4.0", stats.Min)
	}
	if stats.Max != 18.0 {
		t.Errorf("Max = %.1f, want 18.0", stats.Max)
	}
	if stats.Mean != 10.0 {
		t.Errorf("Mean = %.1f, want 10.0", stats.Mean)
	}
}

func TestDailyStatsEmptyDay(t *testing.T) {
	s := New([]model.PricePoint{{Start: slot(12, 0), Price: 9.0}})

	if _, ok := s.DailyStats(time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)); ok {
		t.Error("day with zero points must report undefined stats, not zeros")
	}
	empty := New(nil)
	if _, ok := empty.DailyStats(slot(12, 0)); ok {
		t.Error("empty series must report undefined stats")
	}
}

func TestSpan(t *testing.T) {
	s := New([]model.PricePoint{
		{Start: slot(13, 0), Price: 1},
		{Start: slot(9, 45), Price: 2},
		{Start: slot(22, 30), Price: 3},
	})
	first, last, ok := s.Span()
	if !ok {
		t.Fatal("expected a span")
	}
	if !first.Equal(slot(9, 45)) {
		t.Errorf("first = %v, want 09:45", first)
	}
	if !last.Equal(slot(22, 30)) {
		t.Errorf("last = %v, want 22:30", last)
	}

	if _, _, ok := New(nil).Span(); ok {
		t.Error("empty series should have no span")
	}
}
