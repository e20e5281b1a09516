package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"priceboard/internal/clock"
	"priceboard/internal/collector"
	"priceboard/internal/config"
	"priceboard/internal/display"
	"priceboard/internal/model"
	"priceboard/internal/mqtt"
	"priceboard/internal/power"
	"priceboard/internal/recorder"
	"priceboard/internal/render"
	"priceboard/internal/scheduler"
	"priceboard/internal/series"
	"priceboard/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] priceboard starting...")

	// Optional .env for tokens; real env always wins.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Local time = UTC + static offset; DST is a manual config change.
	clk := clock.NewOffsetClock(cfg.Clock.UTCOffsetHours)

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.HomeAssistant.Host != "" {
		fetcher = collector.NewHassFetcher(cfg.HomeAssistant.Host, cfg.HomeAssistant.Token)
	} else {
		fetcher = &collector.MockFetcher{BasePrice: 10}
	}
	log.Printf("[INFO] price source: %s, sensor: %s", fetcher.Name(), cfg.HomeAssistant.SensorID)
	col := collector.NewCollector(fetcher, cfg.HomeAssistant.SensorID)

	// Init MQTT publisher
	var pub mqtt.Publisher
	if cfg.MQTT.Broker != "" {
		rp, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.TopicPrefix)
		if err != nil {
			// Degraded but alive: the chart still works without the broker.
			log.Printf("[WARN] mqtt connect failed, publishing disabled: %v", err)
			pub = mqtt.NewNoopPublisher()
		} else {
			pub = rp
		}
	} else {
		pub = mqtt.NewNoopPublisher()
	}
	defer pub.Close()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Display boundary: log-backed stand-ins until panel drivers are wired.
	backlight := display.NewLogBacklight()
	touch := display.NewStdinTouchSource()
	defer touch.Close()

	sched := scheduler.NewScheduler(scheduler.Deps{
		Clock:     clk,
		Collector: col,
		Policy: power.Policy{
			Quiet: model.QuietWindow{
				StartHour: *cfg.Night.QuietStart,
				EndHour:   *cfg.Night.QuietEnd,
			},
			WakeDuration: time.Duration(cfg.Night.WakeDurationS) * time.Second,
		},
		Thresholds: series.Thresholds{
			Low: cfg.Prices.LowThreshold,
			Mid: cfg.Prices.MidThreshold,
		},
		SlotsPast:   cfg.Chart.SlotsPast,
		SlotsFuture: cfg.Chart.SlotsFuture,
		Renderer:    render.NewLogRenderer(),
		Backlight:   backlight,
		Publisher:   pub,
		Recorder:    rec,
	})
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Touch events
	go func() {
		for evt := range touch.Events() {
			sched.HandleTouch(evt)
		}
	}()

	// Status endpoint
	var srv *web.Server
	if cfg.Web.Addr != "" {
		srv = web.New(cfg.Web.Addr, sched.Status)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[WARN] status server: %v", err)
			}
		}()
		log.Printf("[INFO] status server on %s", cfg.Web.Addr)
	}

	if err := pub.PublishSystem(mqtt.SystemEvent{Timestamp: clk.Now(), Event: "STARTUP"}); err != nil {
		log.Printf("[WARN] publish startup: %v", err)
	}

	// First paint without waiting for the minute boundary.
	sched.RunTickNow()

	log.Println("[INFO] priceboard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	if err := pub.PublishSystem(mqtt.SystemEvent{
		Timestamp: clk.Now(), Event: "SHUTDOWN", Reason: sig.String(),
	}); err != nil {
		log.Printf("[WARN] publish shutdown: %v", err)
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[WARN] status server shutdown: %v", err)
		}
		cancel()
	}
	log.Println("[INFO] priceboard stopped")
}
