package recorder

import "time"

// FetchSnapshot holds the data recorded after each successful fetch.
type FetchSnapshot struct {
	FetchedAt    time.Time
	Points       int
	SpanStart    time.Time
	SpanEnd      time.Time
	CurrentPrice float64
	CurrentKnown bool
	Tier         string
	StatsMin     float64
	StatsMax     float64
	StatsMean    float64
	StatsKnown   bool
}

// FetchFailure records a fetch attempt that produced no update.
type FetchFailure struct {
	At     time.Time
	Source string
	Reason string
}

// BacklightEvent records a lit/unlit transition.
type BacklightEvent struct {
	At      time.Time
	Lit     bool
	Quiet   bool
	Trigger string
}

// DailySummary records one finished day of prices.
type DailySummary struct {
	Day  string // YYYY-MM-DD
	Min  float64
	Max  float64
	Mean float64
}

// Recorder persists dashboard history for later analysis.
type Recorder interface {
	RecordFetch(snap *FetchSnapshot) error
	RecordFetchFailure(evt *FetchFailure) error
	RecordBacklight(evt *BacklightEvent) error
	RecordDailySummary(sum *DailySummary) error
	Close() error
}
