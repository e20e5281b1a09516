package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"priceboard/internal/scheduler"
)

func startServer(t *testing.T, status func() scheduler.Status) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New("", status)
	go s.Serve(ln)
	t.Cleanup(func() { ln.Close() })
	return "http://" + ln.Addr().String()
}

func TestStatusEndpoint(t *testing.T) {
	now := time.Date(2026, 2, 16, 12, 45, 0, 0, time.UTC)
	base := startServer(t, func() scheduler.Status {
		return scheduler.Status{
			Now:          now,
			CurrentPrice: 9.41,
			CurrentKnown: true,
			Tier:         "MID",
			Lit:          true,
			KnownSlots:   96,
		}
	})

	resp, err := http.Get(base + "/status.json")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var got scheduler.Status
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CurrentPrice != 9.41 || got.Tier != "MID" || !got.Lit || got.KnownSlots != 96 {
		t.Errorf("unexpected status: %+v", got)
	}
}

// brokenWriter simulates a client that dropped the connection mid-response.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (w *brokenWriter) WriteHeader(int)           {}

func TestStatusWriteFailureIsHandled(t *testing.T) {
	s := New("", func() scheduler.Status { return scheduler.Status{Tier: "LOW"} })
	req := httptest.NewRequest(http.MethodGet, "/status.json", nil)

	// Must not panic when the response write fails.
	s.handleStatus(&brokenWriter{}, req)
}

func TestShutdownStopsServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New("", func() scheduler.Status { return scheduler.Status{} })

	served := make(chan error, 1)
	go func() { served <- s.Serve(ln) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-served:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Serve returned %v, want ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	base := startServer(t, func() scheduler.Status { return scheduler.Status{} })

	resp, err := http.Get(base + "/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
