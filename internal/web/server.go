// Package web serves the dashboard's status over HTTP for other devices on
// the local network.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"

	"priceboard/internal/scheduler"
)

// Server exposes the current dashboard status as JSON.
type Server struct {
	httpServer *http.Server
	status     func() scheduler.Status
}

// New creates a Server that reads state through the given status func.
func New(addr string, status func() scheduler.Status) *Server {
	s := &Server{status: status}

	mux := http.NewServeMux()
	mux.HandleFunc("/status.json", s.handleStatus)
	mux.HandleFunc("/", s.handleStatus)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/status.json" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.status()); err != nil {
		log.Printf("[WARN] write status response: %v", err)
	}
}
