package series

import (
	"time"

	"priceboard/internal/model"
)

// Thresholds are the ascending price-tier boundaries in c/kWh.
type Thresholds struct {
	Low float64
	Mid float64
}

// Classify maps a price onto a tier. The lower bound of each band is
// inclusive and the upper bound exclusive, so Classify(Low) is MID and
// Classify(Mid) is HIGH.
func (t Thresholds) Classify(price float64) model.Tier {
	switch {
	case price < t.Low:
		return model.TierLow
	case price < t.Mid:
		return model.TierMid
	default:
		return model.TierHigh
	}
}

// Series holds the currently known day-ahead prices, keyed by slot start.
// The gap between the end of today's data and the publication of tomorrow's
// is represented as absent slots, never as zero or a stale carry-forward.
type Series struct {
	prices map[int64]float64
}

// New builds a Series from fetched points. Points sharing a slot start are
// deduped with the later-listed point winning, so a refresh that republishes
// today's slots alongside tomorrow's overwrites cleanly.
func New(points []model.PricePoint) *Series {
	s := &Series{prices: make(map[int64]float64, len(points))}
	for _, p := range points {
		s.prices[model.FloorSlot(p.Start).Unix()] = p.Price
	}
	return s
}

// Len returns the number of known slots.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.prices)
}

// PriceAt returns the price covering the 15-minute slot containing t.
// ok is false when no point covers it. Safe on a nil series.
func (s *Series) PriceAt(t time.Time) (float64, bool) {
	if s == nil {
		return 0, false
	}
	p, ok := s.prices[model.FloorSlot(t).Unix()]
	return p, ok
}

// Span returns the earliest and latest known slot starts. ok is false for
// an empty series.
func (s *Series) Span() (first, last time.Time, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	var min, max int64
	started := false
	for k := range s.prices {
		if !started {
			min, max = k, k
			started = true
			continue
		}
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	return time.Unix(min, 0).UTC(), time.Unix(max, 0).UTC(), true
}

// DailyStats computes min, max and mean over points whose slot start falls
// on the same calendar day as day (in day's location). ok is false when the
// day has no known points; stats are never fabricated from an empty day.
func (s *Series) DailyStats(day time.Time) (model.DailyStats, bool) {
	if s.Len() == 0 {
		return model.DailyStats{}, false
	}
	y, m, d := day.Date()
	loc := day.Location()

	var stats model.DailyStats
	count := 0
	sum := 0.0
	for k, price := range s.prices {
		sy, sm, sd := time.Unix(k, 0).In(loc).Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		if count == 0 || price < stats.Min {
			stats.Min = price
		}
		if count == 0 || price > stats.Max {
			stats.Max = price
		}
		sum += price
		count++
	}
	if count == 0 {
		return model.DailyStats{}, false
	}
	stats.Mean = sum / float64(count)
	return stats, true
}
