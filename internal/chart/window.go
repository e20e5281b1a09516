// Package chart maps the irregular day-ahead price series onto a fixed-width
// rolling display window aligned to wall-clock time.
package chart

import (
	"time"

	"priceboard/internal/model"
	"priceboard/internal/series"
)

// BuildWindow assembles the display window around now: slotsPast slots
// before the marker, the marker slot itself, then slotsFuture slots after
// it. The marker is the 15-minute floor of now, derived fresh on every call
// so the window advances with wall-clock time without any stored cursor.
// Slots with no covering price are tagged UNKNOWN rather than zero.
func BuildWindow(now time.Time, s *series.Series, th series.Thresholds, slotsPast, slotsFuture int) model.ChartWindow {
	marker := model.FloorSlot(now)
	slots := make([]model.ChartSlot, 0, slotsPast+slotsFuture+1)
	for i := -slotsPast; i <= slotsFuture; i++ {
		start := marker.Add(time.Duration(i) * model.SlotDuration)
		slot := model.ChartSlot{Start: start, Tier: model.TierUnknown}
		if price, ok := s.PriceAt(start); ok {
			slot.Price = price
			slot.Known = true
			slot.Tier = th.Classify(price)
		}
		slots = append(slots, slot)
	}
	return model.ChartWindow{Slots: slots, NowIndex: slotsPast}
}

// IsRefetchDue reports whether a new fetch should be attempted: true on the
// very first call (zero lastFetch), and true whenever now has crossed into
// a different 15-minute slot than lastFetch. This caps fetching at one per
// slot no matter how often the control loop polls.
func IsRefetchDue(lastFetch, now time.Time) bool {
	if lastFetch.IsZero() {
		return true
	}
	return !model.FloorSlot(now).Equal(model.FloorSlot(lastFetch))
}
