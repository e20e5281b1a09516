package render

import (
	"fmt"
	"log"
	"strings"

	"priceboard/internal/model"
)

// FormatFrame renders a frame as a one-line text summary, with the chart
// window compressed to one letter per slot (L/M/H, ? for unknown) and the
// marker slot bracketed.
func FormatFrame(f Frame) string {
	var b strings.Builder

	b.WriteString(f.Now.Format("15:04"))

	if f.CurrentKnown {
		fmt.Fprintf(&b, "  %.2f c/kWh %s", f.CurrentPrice, f.CurrentTier)
	} else {
		b.WriteString("  --.-- c/kWh " + string(model.TierUnknown))
	}

	if f.StatsKnown {
		fmt.Fprintf(&b, " | min %.1f avg %.1f max %.1f", f.Stats.Min, f.Stats.Mean, f.Stats.Max)
	} else {
		b.WriteString(" | no stats for today")
	}

	b.WriteString(" | ")
	for i, slot := range f.Window.Slots {
		c := tierLetter(slot.Tier)
		if i == f.Window.NowIndex {
			b.WriteString("[" + c + "]")
		} else {
			b.WriteString(c)
		}
	}

	return b.String()
}

func tierLetter(t model.Tier) string {
	switch t {
	case model.TierLow:
		return "L"
	case model.TierMid:
		return "M"
	case model.TierHigh:
		return "H"
	default:
		return "?"
	}
}

// LogRenderer writes each frame summary to the process log. Stands in for
// the panel driver during development and headless runs.
type LogRenderer struct{}

func NewLogRenderer() *LogRenderer { return &LogRenderer{} }

func (r *LogRenderer) Render(f Frame) error {
	log.Printf("[INFO] frame: %s", FormatFrame(f))
	return nil
}
