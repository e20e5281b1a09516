package mqtt

import (
	"encoding/json"
	"time"
)

type tierPayload struct {
	Timestamp string   `json:"timestamp"`
	Price     *float64 `json:"price"` // null when the slot is unknown
	Tier      string   `json:"tier"`
}

type backlightPayload struct {
	Timestamp string `json:"timestamp"`
	Lit       bool   `json:"lit"`
	Quiet     bool   `json:"quiet"`
	Trigger   string `json:"trigger"`
}

type systemPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatTierPayload serializes a tier event for the wire.
func FormatTierPayload(event TierEvent) ([]byte, error) {
	p := tierPayload{
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Tier:      event.Tier,
	}
	if event.Known {
		price := event.Price
		p.Price = &price
	}
	return json.Marshal(p)
}

// FormatBacklightPayload serializes a backlight event for the wire.
func FormatBacklightPayload(event BacklightEvent) ([]byte, error) {
	return json.Marshal(backlightPayload{
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Lit:       event.Lit,
		Quiet:     event.Quiet,
		Trigger:   event.Trigger,
	})
}

// FormatSystemPayload serializes a system event for the wire.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	return json.Marshal(systemPayload{
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
	})
}
