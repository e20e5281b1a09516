// Package render is the boundary to the drawing collaborator: it assembles
// everything one redraw needs and hands it over. Pixel work happens on the
// other side.
package render

import (
	"time"

	"priceboard/internal/model"
)

// Frame is a single redraw's worth of dashboard state.
type Frame struct {
	Now          time.Time
	Window       model.ChartWindow
	Stats        model.DailyStats
	StatsKnown   bool
	CurrentPrice float64
	CurrentKnown bool
	CurrentTier  model.Tier
	Lit          bool
}

// Renderer paints a frame.
type Renderer interface {
	Render(f Frame) error
}
