package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sensorJSON = `{
  "state": "9.41",
  "attributes": {
    "current_price": 9.41,
    "raw_today": [
      {"start": "2026-02-16T12:15:00+02:00", "value": 10.2},
      {"start": "2026-02-16T12:00:00+02:00", "value": 9.41},
      {"start": "not-a-timestamp", "value": 5.0}
    ],
    "raw_tomorrow": [
      {"start": "2026-02-17T00:00:00+02:00", "value": 7.8},
      {"start": "2026-02-17T00:15:00+02:00", "value": null}
    ]
  }
}`

func TestHassFetchPrices(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(sensorJSON))
	}))
	defer srv.Close()

	f := NewHassFetcher(srv.URL, "secret-token")
	points, err := f.FetchPrices("sensor.nordpool")
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}

	if gotPath != "/api/states/sensor.nordpool" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("auth header = %q", gotAuth)
	}

	// Malformed start and null value are skipped; the rest sort by time.
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Start.Before(points[i].Start) {
			t.Errorf("points not sorted at %d: %v >= %v", i, points[i-1].Start, points[i].Start)
		}
	}
	if points[0].Price != 9.41 {
		t.Errorf("first price = %.2f, want 9.41", points[0].Price)
	}

	want := time.Date(2026, 2, 16, 12, 0, 0, 0, time.FixedZone("", 2*3600))
	if !points[0].Start.Equal(want) {
		t.Errorf("first start = %v, want %v", points[0].Start, want)
	}
}

func TestHassFetchPricesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := NewHassFetcher(srv.URL, "bad-token")
	if _, err := f.FetchPrices("sensor.nordpool"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestHassFetchPricesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"state": "unknown", "attributes": {"raw_today": [], "raw_tomorrow": []}}`))
	}))
	defer srv.Close()

	f := NewHassFetcher(srv.URL, "token")
	if _, err := f.FetchPrices("sensor.nordpool"); err == nil {
		t.Fatal("expected error when the sensor has no usable points")
	}
}

func TestCollectFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	col := NewCollector(NewHassFetcher(srv.URL, "token"), "sensor.nordpool")
	if _, err := col.Collect(); err == nil {
		t.Fatal("expected Collect to propagate the fetch error")
	}
}

func TestMockFetcherFullDay(t *testing.T) {
	col := NewCollector(&MockFetcher{BasePrice: 10}, "sensor.nordpool")
	ser, err := col.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if ser.Len() != 96 {
		t.Errorf("mock day = %d slots, want 96", ser.Len())
	}
}
