package model

import "time"

// SlotDuration is the granularity of day-ahead price data: one 15-minute
// interval per published price.
const SlotDuration = 15 * time.Minute

// FloorSlot rounds t down to the start of the slot containing it.
func FloorSlot(t time.Time) time.Time {
	return t.Truncate(SlotDuration)
}

// PricePoint is a single published price covering [Start, Start+15min).
// Immutable once fetched.
type PricePoint struct {
	Start time.Time
	Price float64 // c/kWh
}

// Tier classifies a price for color-coding on the display.
type Tier string

const (
	TierLow     Tier = "LOW"
	TierMid     Tier = "MID"
	TierHigh    Tier = "HIGH"
	TierUnknown Tier = "UNKNOWN"
)

// ChartSlot is one bar of the display window. Known is false when no price
// covers the slot; such slots are rendered distinctly, never as zero.
type ChartSlot struct {
	Start time.Time
	Price float64
	Known bool
	Tier  Tier
}

// ChartWindow is the ordered slot sequence around "now". NowIndex marks the
// slot containing the current moment.
type ChartWindow struct {
	Slots    []ChartSlot
	NowIndex int
}

// DailyStats summarises one calendar day of known prices.
type DailyStats struct {
	Min  float64
	Max  float64
	Mean float64
}
