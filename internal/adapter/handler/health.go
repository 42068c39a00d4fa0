package handler

import (
	"net/http"
	"time"
)

// HealthHandler handles health check requests. Readiness additionally
// reflects push transport connectivity.
type HealthHandler struct {
	startTime time.Time
	connected ConnectionStatus
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(connected ConnectionStatus) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		connected: connected,
	}
}

// ServeHTTP handles GET /health and GET /ready
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"connected": h.connected(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startTime).String(),
	})
}
