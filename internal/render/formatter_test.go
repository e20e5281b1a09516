package render

import (
	"strings"
	"testing"
	"time"

	"priceboard/internal/model"
)

func testFrame() Frame {
	return Frame{
		Now: time.Date(2026, 2, 16, 12, 45, 0, 0, time.UTC),
		Window: model.ChartWindow{
			Slots: []model.ChartSlot{
				{Tier: model.TierLow, Known: true, Price: 5},
				{Tier: model.TierMid, Known: true, Price: 9.5},
				{Tier: model.TierHigh, Known: true, Price: 21},
				{Tier: model.TierUnknown},
			},
			NowIndex: 1,
		},
		Stats:        model.DailyStats{Min: 4.2, Max: 21.0, Mean: 9.1},
		StatsKnown:   true,
		CurrentPrice: 9.5,
		CurrentKnown: true,
		CurrentTier:  model.TierMid,
		Lit:          true,
	}
}

func TestFormatFrame(t *testing.T) {
	out := FormatFrame(testFrame())

	for _, want := range []string{
		"12:45",
		"9.50 c/kWh MID",
		"min 4.2 avg 9.1 max 21.0",
		"L[M]H?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestFormatFrameUnknownPrice(t *testing.T) {
	f := testFrame()
	f.CurrentKnown = false
	f.StatsKnown = false

	out := FormatFrame(f)
	if !strings.Contains(out, "--.--") {
		t.Errorf("unknown price should render as placeholder, got %q", out)
	}
	if !strings.Contains(out, "no stats") {
		t.Errorf("missing stats note in %q", out)
	}
	if strings.Contains(out, "0.00") {
		t.Errorf("unknown price must never render as zero: %q", out)
	}
}

func TestFakeRendererRecords(t *testing.T) {
	r := NewFakeRenderer()
	if err := r.Render(testFrame()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(r.Frames))
	}
	if !r.Last().CurrentKnown {
		t.Error("recorded frame lost its fields")
	}
}
