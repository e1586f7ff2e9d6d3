package httpapi

import "net/http"

// handleHealth (GET /health) is a liveness probe.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
