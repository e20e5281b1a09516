package collector

import "priceboard/internal/model"

// Fetcher retrieves the day-ahead price points for a sensor.
type Fetcher interface {
	FetchPrices(sensorID string) ([]model.PricePoint, error)
	Name() string
}
