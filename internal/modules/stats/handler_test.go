package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/internal/domain"
	"productivity/internal/repository"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	r := gin.New()
	NewHandler(NewService(store, nil)).RegisterRoutes(r.Group("/api"))
	return r, store
}

func doJSONRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetStats(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSONRequest(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var st domain.UserStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, repository.InitialStreak, st.Streak)
	assert.Contains(t, w.Body.String(), `"favoritesCount":0`)
	assert.Contains(t, w.Body.String(), `"lastActive":`)
}

func TestUpdateStats(t *testing.T) {
	r, store := setupTestRouter(t)

	w := doJSONRequest(t, r, http.MethodPatch, "/api/stats", gin.H{"streak": 10})
	require.Equal(t, http.StatusOK, w.Code)
	var st domain.UserStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 10, st.Streak)

	stored, err := store.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Streak)
}

func TestUpdateStats_Validation(t *testing.T) {
	r, store := setupTestRouter(t)

	w := doJSONRequest(t, r, http.MethodPatch, "/api/stats", gin.H{"dailyTips": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"path":["dailyTips"]`)

	w = doJSONRequest(t, r, http.MethodPatch, "/api/stats", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := store.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.InitialStreak, stored.Streak)
	assert.Zero(t, stored.DailyTips)
}

func TestDailyResetJob(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tip, err := store.CreateTip(ctx, "x", "A")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = store.ViewTip(ctx, tip.ID)
		require.NoError(t, err)
	}

	NewDailyResetJob(NewService(store, nil)).Run()

	st, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.DailyTips)
	assert.Equal(t, 1, st.TotalTips)

	got, err := store.GetTip(ctx, tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Views)
}
