package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
)

func workerRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set(workerSecretHeader, testWorkerSecret)
	return r
}

func TestWorkerRoutes_RejectWrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Start(gomock.Any(), gomock.Any()).Times(0)

	r := httptest.NewRequest(http.MethodPost, "/internal/jobs/job-1/start", nil)
	r.Header.Set(workerSecretHeader, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkerHandlers_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Start(gomock.Any(), "job-1").Return(true, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/start", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["ok"])
}

func TestWorkerHandlers_Start_NotQueued(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Start(gomock.Any(), "job-1").Return(false, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/start", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.ErrCodeConflict), body["error"])
}

func TestWorkerHandlers_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	completed := &model.PipelineJob{ID: "job-1", JobType: model.JobTypeTradingSweep, Status: model.JobStatusCompleted}
	m.jobs.EXPECT().
		Complete(gomock.Any(), "job-1", json.RawMessage(`{"best":"res-1"}`), json.RawMessage(`{"elapsed":12}`)).
		Return(completed, nil)
	m.results.EXPECT().
		InsertBatch(gomock.Any(), "job-1", gomock.Len(1)).
		Return(nil)

	body := []byte(`{
		"result": {"best":"res-1"},
		"metrics": {"elapsed":12},
		"sweep_results": [{"sweep_run_id":"run-1","ticker":"AAPL","strategy_type":"sma_crossover","fast_period":5,"slow_period":20,"score":1.5}]
	}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/complete", body))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWorkerHandlers_Complete_LostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Complete(gomock.Any(), "job-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	m.results.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := []byte(`{"result":{},"metrics":{},"sweep_results":[{"score":1}]}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/complete", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var respBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, string(apperrors.ErrCodeConflict), respBody["error"])
}

func TestWorkerHandlers_Complete_RejectsSweepResultsForNonSweepJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	etlJob := &model.PipelineJob{ID: "job-1", JobType: model.JobTypeDataETL, Status: model.JobStatusCompleted}
	m.jobs.EXPECT().Complete(gomock.Any(), "job-1", gomock.Any(), gomock.Any()).Return(etlJob, nil)
	m.results.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := []byte(`{"result":{},"metrics":{},"sweep_results":[{"ticker":"AAPL","score":1.5}]}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/complete", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var respBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, string(apperrors.ErrCodeTypeMismatch), respBody["error"])
}

func TestWorkerHandlers_Fail(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Fail(gomock.Any(), "job-1", "worker crashed").Return(true, nil)

	body := []byte(`{"error":"worker crashed"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/fail", body))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWorkerHandlers_Fail_RequiresMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.jobs.EXPECT().Fail(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := []byte(`{"error":""}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodPost, "/internal/jobs/job-1/fail", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var respBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, string(apperrors.ErrCodeValidation), respBody["error"])
}

func TestWorkerHandlers_GetTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.tenants.EXPECT().GetByID(gomock.Any(), "tenant-1").Return(&model.Tenant{
		ID:        "tenant-1",
		Name:      "Acme Analytics",
		Slug:      "acme-analytics",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodGet, "/internal/tenants/tenant-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var tenant model.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tenant))
	assert.Equal(t, "Acme Analytics", tenant.Name)
}

func TestWorkerHandlers_GetTenant_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, m := newTestRouter(t, ctrl)

	m.tenants.EXPECT().
		GetByID(gomock.Any(), "missing").
		Return(nil, apperrors.NotFound("tenant not found"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, workerRequest(http.MethodGet, "/internal/tenants/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
