package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/service"
)

// WorkerHandlers provides the internal HTTP surface pipeline workers call to
// report job transitions. These routes are guarded by the worker shared
// secret, not the session middleware, and operate by job id without a tenant
// scope.
type WorkerHandlers struct {
	Svc     *service.PipelineService
	Tenants core.TenantRepository
}

// Start handles a worker reporting it picked the job up (queued to running).
func (h *WorkerHandlers) Start(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	ok, err := h.Svc.MarkStarted(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteAppError(w, apperrors.Conflict("job is not in the queued state"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// completeRequest is the worker's completion report: output blobs plus any
// sweep result rows for trading-sweep jobs.
type completeRequest struct {
	Result       json.RawMessage          `json:"result"`
	Metrics      json.RawMessage          `json:"metrics"`
	SweepResults []model.SweepResultInput `json:"sweep_results"`
}

// Complete handles a worker reporting a successful run (running to completed).
func (h *WorkerHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	var req completeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ok, err := h.Svc.MarkCompleted(r.Context(), jobID, req.Result, req.Metrics, req.SweepResults)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteAppError(w, apperrors.Conflict("job is not running"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Fail handles a worker reporting a failed run with its error message.
func (h *WorkerHandlers) Fail(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	var body struct {
		Error string `json:"error"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Error == "" {
		WriteAppError(w, apperrors.ValidationField("error", "error message is required"))
		return
	}

	ok, err := h.Svc.MarkFailed(r.Context(), jobID, body.Error)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !ok {
		WriteAppError(w, apperrors.Conflict("job is already in a terminal state"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetTenant resolves a tenant record for workers that need display metadata
// when reporting progress out-of-band. This is the one read path not scoped
// by the caller's own tenant.
func (h *WorkerHandlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("id")
	if tenantID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("tenant id is required")},
		)
		return
	}

	tenant, err := h.Tenants.GetByID(r.Context(), tenantID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tenant)
}
