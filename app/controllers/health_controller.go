package controllers

import (
	"context"
	"net/http"
	"time"

	"lumina/app/repositories"
)

// HealthController reports liveness and store readiness
type HealthController struct {
	backend repositories.Backend
}

func NewHealthController(backend repositories.Backend) *HealthController {
	return &HealthController{backend: backend}
}

// Health reports that the process is up. The serving backend is only logged
// at startup.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// Ready pings the store
func (hc *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := hc.backend.Ping(ctx); err != nil {
		sendJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"ok": false, "status": "not_ready"})
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "status": "ready"})
}
