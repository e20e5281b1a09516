// Package mqtt publishes dashboard state changes to a home-automation
// broker, with abstraction for testing.
package mqtt

import "time"

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "energy/priceboard"

// TierEvent reports the price tier of the current slot changing.
type TierEvent struct {
	Timestamp time.Time
	Price     float64
	Tier      string
	Known     bool // false when the current slot has no price
}

// BacklightEvent reports a lit/unlit transition.
type BacklightEvent struct {
	Timestamp time.Time
	Lit       bool
	Quiet     bool   // whether the quiet window was active at the transition
	Trigger   string // e.g. "SCHEDULE", "TOUCH"
}

// SystemEvent is a lifecycle event (startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // e.g. "STARTUP", "SHUTDOWN", "DAILY_SUMMARY"
	Reason    string // e.g. "SIGTERM" (shutdown only)
}

// Publisher publishes dashboard events to MQTT.
// Publishing failures must not crash the process.
type Publisher interface {
	PublishTier(event TierEvent) error
	PublishBacklight(event BacklightEvent) error
	PublishSystem(event SystemEvent) error
	Close() error
}
