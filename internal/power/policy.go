// Package power decides whether the display backlight should be lit, given
// the configured quiet hours and touch-wake events. Pure functions of the
// supplied time; no hardware and no sleeping.
package power

import (
	"time"

	"priceboard/internal/model"
)

// InQuietHours reports whether hour h falls inside the quiet window.
//
// Examples:
//
//	StartHour=1,  EndHour=9 → quiet from 01:00 to 09:00 (no midnight wrap)
//	StartHour=23, EndHour=7 → quiet from 23:00 to 07:00 (wraps midnight)
//	StartHour=0,  EndHour=0 → never quiet (disabled)
func InQuietHours(q model.QuietWindow, h int) bool {
	switch {
	case q.StartHour == q.EndHour:
		return false
	case q.StartHour < q.EndHour:
		return q.StartHour <= h && h < q.EndHour
	default:
		return h >= q.StartHour || h < q.EndHour
	}
}

// Policy evaluates the lit/unlit decision.
type Policy struct {
	Quiet        model.QuietWindow
	WakeDuration time.Duration
}

// Evaluate returns the lit decision for now together with the updated wake
// state. Outside the quiet window the display is always lit and any pending
// wake timer is cleared. Inside it, the display is lit only while a wake
// deadline lies in the future; expiry is lazy, observed on the next call
// rather than through an explicit deactivation.
func (p Policy) Evaluate(now time.Time, wake model.WakeState) (bool, model.WakeState) {
	if !InQuietHours(p.Quiet, now.Hour()) {
		return true, model.WakeState{Lit: true}
	}
	if !wake.WakeUntil.IsZero() && now.Before(wake.WakeUntil) {
		return true, model.WakeState{Lit: true, WakeUntil: wake.WakeUntil}
	}
	return false, model.WakeState{}
}

// Touch starts or restarts the wake timer at now + WakeDuration.
func (p Policy) Touch(now time.Time) model.WakeState {
	return model.WakeState{Lit: true, WakeUntil: now.Add(p.WakeDuration)}
}
