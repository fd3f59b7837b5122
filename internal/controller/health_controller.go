package controller

import (
	"net/http"

	"github.com/bancoademi/transfers/internal/directory"
)

type HealthController struct {
	loader        *directory.Loader
	sessionUserID string
}

func NewHealthController(loader *directory.Loader, sessionUserID string) *HealthController {
	return &HealthController{loader: loader, sessionUserID: sessionUserID}
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness reports not-ready while the directory source is unreachable. The
// workflow itself degrades gracefully, but a shell should know the catalogs
// are empty for infrastructural reasons.
func (h *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	dir := h.loader.Load(r.Context(), h.sessionUserID)
	if dir.Degraded() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "directory source unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
