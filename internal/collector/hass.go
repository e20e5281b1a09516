package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"priceboard/internal/model"
)

// HassFetcher implements Fetcher against the Home Assistant REST API,
// reading a Nordpool sensor's raw_today/raw_tomorrow attributes.
type HassFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHassFetcher creates a fetcher for the given Home Assistant instance.
func NewHassFetcher(baseURL, token string) *HassFetcher {
	return &HassFetcher{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HassFetcher) Name() string { return "home-assistant" }

// hassState is the /api/states/<entity> response shape. Only the raw price
// arrays are consumed; min/mean/max are recomputed locally.
type hassState struct {
	State      string `json:"state"`
	Attributes struct {
		RawToday    []hassRawPrice `json:"raw_today"`
		RawTomorrow []hassRawPrice `json:"raw_tomorrow"`
	} `json:"attributes"`
}

// hassRawPrice is one slot entry, e.g.
// {"start": "2026-02-16T18:30:00+02:00", "value": 12.34}.
// value is null for tomorrow's slots before publication.
type hassRawPrice struct {
	Start string   `json:"start"`
	Value *float64 `json:"value"`
}

func (f *HassFetcher) FetchPrices(sensorID string) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/states/%s", f.BaseURL, sensorID)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hass fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hass read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hass: status %d, body: %s", resp.StatusCode, string(body))
	}

	var state hassState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("hass decode: %w", err)
	}

	raw := append(state.Attributes.RawToday, state.Attributes.RawTomorrow...)
	points := make([]model.PricePoint, 0, len(raw))
	for _, r := range raw {
		if r.Value == nil {
			continue // unpublished slot
		}
		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			log.Printf("[WARN] hass: skipping slot with bad start %q: %v", r.Start, err)
			continue
		}
		points = append(points, model.PricePoint{Start: start, Price: *r.Value})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("hass: sensor %s returned no usable price points", sensorID)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Start.Before(points[j].Start) })
	return points, nil
}
