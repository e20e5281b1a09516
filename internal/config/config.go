package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	HomeAssistant struct {
		Host     string `yaml:"host"`
		Token    string `yaml:"token"`
		SensorID string `yaml:"sensor_id"`
	} `yaml:"home_assistant"`
	Prices struct {
		LowThreshold float64 `yaml:"low_threshold"`
		MidThreshold float64 `yaml:"mid_threshold"`
	} `yaml:"prices"`
	Chart struct {
		SlotsPast   int `yaml:"slots_past"`
		SlotsFuture int `yaml:"slots_future"`
	} `yaml:"chart"`
	Clock struct {
		// Signed UTC offset in hours. No DST handling — update manually
		// when clocks change.
		UTCOffsetHours int `yaml:"utc_offset_hours"`
	} `yaml:"clock"`
	Night struct {
		// Pointers so an explicit 0/0 (quiet hours disabled) is
		// distinguishable from absent keys, which default to 23/7.
		QuietStart    *int `yaml:"quiet_start"`
		QuietEnd      *int `yaml:"quiet_end"`
		WakeDurationS int  `yaml:"wake_duration_s"`
	} `yaml:"night"`
	MQTT struct {
		Broker      string `yaml:"broker"`
		TopicPrefix string `yaml:"topic_prefix"`
	} `yaml:"mqtt"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HA_HOST"); v != "" {
		cfg.HomeAssistant.Host = v
	}
	if v := os.Getenv("HA_TOKEN"); v != "" {
		cfg.HomeAssistant.Token = v
	}
	if v := os.Getenv("HA_SENSOR_ID"); v != "" {
		cfg.HomeAssistant.SensorID = v
	}
	if v := os.Getenv("TIMEZONE_OFFSET"); v != "" {
		var offset int
		if _, err := fmt.Sscanf(v, "%d", &offset); err == nil {
			cfg.Clock.UTCOffsetHours = offset
		}
	}
	if v := os.Getenv("QUIET_START"); v != "" {
		var h int
		if _, err := fmt.Sscanf(v, "%d", &h); err == nil {
			cfg.Night.QuietStart = &h
		}
	}
	if v := os.Getenv("QUIET_END"); v != "" {
		var h int
		if _, err := fmt.Sscanf(v, "%d", &h); err == nil {
			cfg.Night.QuietEnd = &h
		}
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.HomeAssistant.SensorID == "" {
		cfg.HomeAssistant.SensorID = "sensor.nordpool"
	}
	if cfg.Prices.LowThreshold == 0 {
		cfg.Prices.LowThreshold = 8.0
	}
	if cfg.Prices.MidThreshold == 0 {
		cfg.Prices.MidThreshold = 15.0
	}
	if cfg.Chart.SlotsPast == 0 {
		cfg.Chart.SlotsPast = 4 // 1 hour back
	}
	if cfg.Chart.SlotsFuture == 0 {
		cfg.Chart.SlotsFuture = 20 // 5 hours forward
	}
	if cfg.Night.QuietStart == nil {
		h := 23
		cfg.Night.QuietStart = &h
	}
	if cfg.Night.QuietEnd == nil {
		h := 7
		cfg.Night.QuietEnd = &h
	}
	if cfg.Night.WakeDurationS == 0 {
		cfg.Night.WakeDurationS = 300
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "energy/priceboard"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent. An empty
// home_assistant.host selects the mock fetcher, so it is not required here.
func (c *Config) Validate() error {
	if c.HomeAssistant.Host != "" && c.HomeAssistant.Token == "" {
		return fmt.Errorf("home_assistant.token is required when host is set")
	}
	if c.Prices.LowThreshold >= c.Prices.MidThreshold {
		return fmt.Errorf("prices.low_threshold must be below mid_threshold")
	}
	if c.Chart.SlotsPast < 0 || c.Chart.SlotsFuture < 0 {
		return fmt.Errorf("chart slot counts must be non-negative")
	}
	if c.Night.QuietStart == nil || c.Night.QuietEnd == nil {
		return fmt.Errorf("night quiet hours are not set")
	}
	if *c.Night.QuietStart < 0 || *c.Night.QuietStart > 23 ||
		*c.Night.QuietEnd < 0 || *c.Night.QuietEnd > 23 {
		return fmt.Errorf("night quiet hours must be within 0-23")
	}
	if c.Night.WakeDurationS < 0 {
		return fmt.Errorf("night.wake_duration_s must be non-negative")
	}
	return nil
}
