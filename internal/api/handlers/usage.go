package handlers

import (
	"net/http"

	"dispatch-planner-service/internal/services"
)

type UsageHandler struct {
	Session *services.SessionState
}

// Usage reports the monthly external API call counters.
func (h *UsageHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, h.Session.Usage())
}
