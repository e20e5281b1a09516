// Package display abstracts the backlight and touch surface. The real panel
// and touch controller drivers live outside this process core; these
// interfaces carry their events in and our decisions out.
package display

import "time"

// Backlight switches the panel light on or off.
type Backlight interface {
	Set(on bool) error
}

// TouchEvent is a discrete wake tap. The core needs no positional data.
type TouchEvent struct {
	Time time.Time
}

// TouchSource delivers touch events as they happen.
type TouchSource interface {
	Events() <-chan TouchEvent
	Close() error
}
