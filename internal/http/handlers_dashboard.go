package httpx

import (
	"net/http"

	"github.com/meridianbi/meridian-api/internal/service"
)

// DashboardHandlers provides HTTP handlers for the tenant business dashboard.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Overview handles HTTP requests for the combined dashboard payload.
// Any failing roll-up fails the whole request; there is no partial response.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())

	response, err := h.Svc.Overview(r.Context(), tenantID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, response)
}
