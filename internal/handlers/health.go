package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "luminadecor/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Sessions int       `json:"sessions"`
}

// Health reports readiness and the number of live wizard sessions.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp := healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	}
	if registry != nil {
		resp.Sessions = registry.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
	}
}
