package httpx

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// healthPingTimeout bounds the readiness DB ping so a stuck pool cannot hang
// the health endpoint.
const healthPingTimeout = 2 * time.Second

// HealthHandlers reports service health based on backing-store reachability.
type HealthHandlers struct {
	DB *sql.DB
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health handles readiness/liveness checks with a short DB ping.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := h.DB.PingContext(ctx); err != nil {
		WriteJSON(w, http.StatusInternalServerError, healthResponse{
			Status:    "error",
			Message:   "database unreachable",
			Timestamp: timestamp,
		})
		return
	}

	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Message:   "all systems operational",
		Timestamp: timestamp,
	})
}
