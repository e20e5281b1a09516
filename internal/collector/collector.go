package collector

import (
	"fmt"
	"math"
	"time"

	"priceboard/internal/model"
	"priceboard/internal/series"
)

// MockFetcher returns a deterministic synthetic tariff day for development
// and testing: a daily curve with a morning and an evening peak.
type MockFetcher struct {
	BasePrice float64
	Points    []model.PricePoint // when set, returned as-is
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(_ string) ([]model.PricePoint, error) {
	if m.Points != nil {
		return m.Points, nil
	}
	return generateMockDay(m.BasePrice, time.Now().UTC()), nil
}

func generateMockDay(basePrice float64, now time.Time) []model.PricePoint {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	points := make([]model.PricePoint, 0, 96)
	for i := 0; i < 96; i++ {
		hour := float64(i) / 4.0
		// Two-peak shape roughly tracking household demand.
		peaks := math.Exp(-math.Pow(hour-8, 2)/8) + math.Exp(-math.Pow(hour-19, 2)/8)
		points = append(points, model.PricePoint{
			Start: midnight.Add(time.Duration(i) * model.SlotDuration),
			Price: basePrice * (0.6 + peaks),
		})
	}
	return points
}

// Collector orchestrates fetching and series construction.
type Collector struct {
	Fetcher  Fetcher
	SensorID string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, sensorID string) *Collector {
	return &Collector{Fetcher: fetcher, SensorID: sensorID}
}

// Collect fetches the latest day-ahead points and builds a fresh series.
// Any failure leaves the caller's previous series untouched; the error is
// the only output on that path.
func (c *Collector) Collect() (*series.Series, error) {
	points, err := c.Fetcher.FetchPrices(c.SensorID)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	s := series.New(points)
	if s.Len() == 0 {
		return nil, fmt.Errorf("fetch prices: empty series from %s", c.Fetcher.Name())
	}
	return s, nil
}
