package model

import "time"

// QuietWindow is an hour-of-day interval during which the display defaults
// to unlit. StartHour > EndHour wraps past midnight; StartHour == EndHour
// disables quiet mode entirely.
type QuietWindow struct {
	StartHour int // 0-23
	EndHour   int // 0-23
}

// WakeState carries the backlight decision between policy evaluations.
// Transient: mutated by touches and time elapsing, never persisted.
type WakeState struct {
	Lit       bool
	WakeUntil time.Time // zero means no active wake timer
}
