package httpx

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbi/meridian-api/internal/testutil"
)

func TestHealthHandlers_Health(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		handlers := &HealthHandlers{DB: db}

		w := httptest.NewRecorder()
		handlers.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.NotEmpty(t, resp.Timestamp)
	})
}

func TestHealthHandlers_Health_DBDown(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupAutoDB(t)
	require.NoError(t, db.Close())

	handlers := &HealthHandlers{DB: db}

	w := httptest.NewRecorder()
	handlers.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}
