package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"priceboard/internal/chart"
	"priceboard/internal/clock"
	"priceboard/internal/collector"
	"priceboard/internal/display"
	"priceboard/internal/model"
	"priceboard/internal/mqtt"
	"priceboard/internal/power"
	"priceboard/internal/recorder"
	"priceboard/internal/render"
	"priceboard/internal/series"

	"github.com/robfig/cron/v3"
)

// Cron specs (with seconds field). The tick fires at every whole minute so
// the clock readout stays accurate; the marker snaps to 15-minute slots on
// its own. The summary job runs just past midnight to close out yesterday.
const (
	tickSpec         = "0 * * * * *"
	dailySummarySpec = "0 1 0 * * *"
)

// heartbeatInterval spaces out liveness events so subscribers can tell a
// dark-but-healthy device from a dead one.
const heartbeatInterval = 15 * time.Minute

// Deps bundles the scheduler's collaborators.
type Deps struct {
	Clock       clock.Clock
	Collector   *collector.Collector
	Policy      power.Policy
	Thresholds  series.Thresholds
	SlotsPast   int
	SlotsFuture int
	Renderer    render.Renderer
	Backlight   display.Backlight
	Publisher   mqtt.Publisher
	Recorder    recorder.Recorder
}

// Status is a point-in-time view of the dashboard for the web endpoint.
type Status struct {
	Now           time.Time `json:"now"`
	CurrentPrice  float64   `json:"current_price"`
	CurrentKnown  bool      `json:"current_known"`
	Tier          string    `json:"tier"`
	Lit           bool      `json:"lit"`
	Quiet         bool      `json:"quiet"`
	KnownSlots    int       `json:"known_slots"`
	LastFetch     time.Time `json:"last_fetch"`
	FetchFailures int       `json:"fetch_failures"`
}

// Scheduler runs the control loop: per-minute ticks that evaluate the
// backlight policy, decide whether a fetch is due, rebuild the chart window
// and redraw, plus a nightly summary job.
type Scheduler struct {
	Cron *cron.Cron
	Deps

	mu            sync.Mutex
	series        *series.Series // replaced wholesale on successful fetch
	lastFetch     time.Time
	wake          model.WakeState
	lit           bool
	lastTier      model.Tier
	lastHeartbeat time.Time
	fetchFailures int
}

// NewScheduler creates a Scheduler. Boot counts as a touch-wake so a device
// powered on during quiet hours stays visible for the wake duration.
func NewScheduler(deps Deps) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Deps: deps,
		wake: deps.Policy.Touch(deps.Clock.Now()),
		lit:  true,
		// The STARTUP event announces boot, so the first heartbeat waits a
		// full interval.
		lastHeartbeat: deps.Clock.Now(),
	}
}

// RegisterAll registers the minute tick and the nightly summary task.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(tickSpec, s.tick); err != nil {
		return fmt.Errorf("register tick: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailySummarySpec, s.dailySummary); err != nil {
		return fmt.Errorf("register daily summary: %w", err)
	}
	return nil
}

// Start lights the panel and starts the cron loop.
func (s *Scheduler) Start() {
	if err := s.Backlight.Set(true); err != nil {
		log.Printf("[WARN] backlight on at boot: %v", err)
	}
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron loop gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunTickNow executes one tick immediately (first paint at startup).
func (s *Scheduler) RunTickNow() {
	s.tick()
}

// HandleTouch processes a discrete wake tap from the touch collaborator.
func (s *Scheduler) HandleTouch(_ display.TouchEvent) {
	now := s.Clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wake = s.Policy.Touch(now)
	s.applyPowerLocked(now, "TOUCH")
}

func (s *Scheduler) tick() {
	now := s.Clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyPowerLocked(now, "SCHEDULE")

	if chart.IsRefetchDue(s.lastFetch, now) {
		s.fetchLocked(now)
	}

	s.publishTierLocked(now)
	s.heartbeatLocked(now)

	if !s.lit {
		return // panel dark, skip the redraw
	}
	if err := s.Renderer.Render(s.frameLocked(now)); err != nil {
		log.Printf("[ERROR] render: %v", err)
	}
}

// fetchLocked attempts one fetch. On failure the previous series and
// last-fetch timestamp stay untouched, so the next slot boundary retries;
// the chart just carries more UNKNOWN slots in the meantime.
func (s *Scheduler) fetchLocked(now time.Time) {
	ser, err := s.Collector.Collect()
	if err != nil {
		s.fetchFailures++
		log.Printf("[ERROR] collect: %v", err)
		if rerr := s.Recorder.RecordFetchFailure(&recorder.FetchFailure{
			At: now, Source: s.Collector.Fetcher.Name(), Reason: err.Error(),
		}); rerr != nil {
			log.Printf("[ERROR] record fetch failure: %v", rerr)
		}
		return
	}

	s.series = ser // reference swap, never in-place mutation
	s.lastFetch = now
	log.Printf("[INFO] fetched %d price slots", ser.Len())

	snap := &recorder.FetchSnapshot{FetchedAt: now, Points: ser.Len()}
	if first, last, ok := ser.Span(); ok {
		snap.SpanStart, snap.SpanEnd = first, last
	}
	if price, ok := ser.PriceAt(now); ok {
		snap.CurrentPrice = price
		snap.CurrentKnown = true
		snap.Tier = string(s.Thresholds.Classify(price))
	} else {
		snap.Tier = string(model.TierUnknown)
	}
	if stats, ok := ser.DailyStats(now); ok {
		snap.StatsMin, snap.StatsMax, snap.StatsMean = stats.Min, stats.Max, stats.Mean
		snap.StatsKnown = true
	}
	if err := s.Recorder.RecordFetch(snap); err != nil {
		log.Printf("[ERROR] record fetch: %v", err)
	}
}

// applyPowerLocked evaluates the lit decision and signals the backlight
// collaborator on transition edges only.
func (s *Scheduler) applyPowerLocked(now time.Time, trigger string) {
	lit, wake := s.Policy.Evaluate(now, s.wake)
	s.wake = wake
	if lit == s.lit {
		return
	}
	s.lit = lit

	if err := s.Backlight.Set(lit); err != nil {
		log.Printf("[ERROR] backlight set %v: %v", lit, err)
	}

	quiet := power.InQuietHours(s.Policy.Quiet, now.Hour())
	if err := s.Publisher.PublishBacklight(mqtt.BacklightEvent{
		Timestamp: now, Lit: lit, Quiet: quiet, Trigger: trigger,
	}); err != nil {
		log.Printf("[WARN] publish backlight: %v", err)
	}
	if err := s.Recorder.RecordBacklight(&recorder.BacklightEvent{
		At: now, Lit: lit, Quiet: quiet, Trigger: trigger,
	}); err != nil {
		log.Printf("[ERROR] record backlight: %v", err)
	}
}

// publishTierLocked pushes a tier event whenever the current slot's tier
// differs from the last published one.
func (s *Scheduler) publishTierLocked(now time.Time) {
	tier := model.TierUnknown
	price, known := s.series.PriceAt(now)
	if known {
		tier = s.Thresholds.Classify(price)
	}
	if tier == s.lastTier {
		return
	}
	s.lastTier = tier

	if err := s.Publisher.PublishTier(mqtt.TierEvent{
		Timestamp: now, Price: price, Tier: string(tier), Known: known,
	}); err != nil {
		log.Printf("[WARN] publish tier: %v", err)
	}
}

// heartbeatLocked emits a liveness event at most once per interval.
func (s *Scheduler) heartbeatLocked(now time.Time) {
	if now.Sub(s.lastHeartbeat) < heartbeatInterval {
		return
	}
	s.lastHeartbeat = now

	if err := s.Publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: now, Event: "HEARTBEAT",
	}); err != nil {
		log.Printf("[WARN] publish heartbeat: %v", err)
	}
}

func (s *Scheduler) frameLocked(now time.Time) render.Frame {
	f := render.Frame{
		Now:         now,
		Window:      chart.BuildWindow(now, s.series, s.Thresholds, s.SlotsPast, s.SlotsFuture),
		CurrentTier: model.TierUnknown,
		Lit:         s.lit,
	}
	if price, ok := s.series.PriceAt(now); ok {
		f.CurrentPrice = price
		f.CurrentKnown = true
		f.CurrentTier = s.Thresholds.Classify(price)
	}
	if stats, ok := s.series.DailyStats(now); ok {
		f.Stats = stats
		f.StatsKnown = true
	}
	return f
}

func (s *Scheduler) dailySummary() {
	now := s.Clock.Now()
	yesterday := now.AddDate(0, 0, -1)

	s.mu.Lock()
	ser := s.series
	s.mu.Unlock()

	stats, ok := ser.DailyStats(yesterday)
	if !ok {
		log.Printf("[INFO] no price data for %s, skipping daily summary", yesterday.Format("2006-01-02"))
		return
	}
	if err := s.Recorder.RecordDailySummary(&recorder.DailySummary{
		Day: yesterday.Format("2006-01-02"), Min: stats.Min, Max: stats.Max, Mean: stats.Mean,
	}); err != nil {
		log.Printf("[ERROR] record daily summary: %v", err)
	}
	if err := s.Publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: now, Event: "DAILY_SUMMARY",
	}); err != nil {
		log.Printf("[WARN] publish daily summary: %v", err)
	}
}

// Status returns a snapshot for the HTTP status endpoint.
func (s *Scheduler) Status() Status {
	now := s.Clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Now:           now,
		Tier:          string(model.TierUnknown),
		Lit:           s.lit,
		Quiet:         power.InQuietHours(s.Policy.Quiet, now.Hour()),
		KnownSlots:    s.series.Len(),
		LastFetch:     s.lastFetch,
		FetchFailures: s.fetchFailures,
	}
	if price, ok := s.series.PriceAt(now); ok {
		st.CurrentPrice = price
		st.CurrentKnown = true
		st.Tier = string(s.Thresholds.Classify(price))
	}
	return st
}
