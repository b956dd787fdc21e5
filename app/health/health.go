// Package health exposes the liveness and readiness HTTP endpoints used by
// container orchestration.
package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the body served on /health.
type Response struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Handler serves the health endpoints.
type Handler struct {
	startTime time.Time
	service   string
	ready     func() bool
}

// NewHandler creates a health handler for the named service.
func NewHandler(service string) *Handler {
	return &Handler{
		startTime: time.Now(),
		service:   service,
		ready:     func() bool { return true },
	}
}

// SetReadyCheck overrides the readiness probe.
func (h *Handler) SetReadyCheck(fn func() bool) {
	if fn != nil {
		h.ready = fn
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Status:    "healthy",
		Service:   h.service,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).String(),
	})
}

// Ready reports readiness.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// StartServer blocks serving the health endpoints on addr.
func (h *Handler) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	return server.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
