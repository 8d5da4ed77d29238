// internal/interfaces/http/handlers/legacy_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/legacy"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
)

type fixedCounters struct {
	counters message.ReadinessCounters
}

func (f *fixedCounters) GetReadinessCounters(_ context.Context, _ uuid.UUID) (*message.ReadinessCounters, error) {
	c := f.counters
	return &c, nil
}

func setupLegacyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := &LegacyHandler{
		legacyService: legacy.NewService(&fixedCounters{}),
		config:        &config.Config{},
	}

	router := gin.New()
	router.POST("/legacy/readiness", handler.EvaluateReadiness)
	return router
}

func TestEvaluateReadiness_FullyPrepared(t *testing.T) {
	router := setupLegacyRouter(t)

	body := `{"message_count":12,"gift_plan_count":8,"scheduled_moments":24,"has_emergency_backup":true}`
	req := httptest.NewRequest(http.MethodPost, "/legacy/readiness", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data legacy.ReadinessResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 100, resp.Data.Score)
	assert.Equal(t, legacy.TierLegacyReady, resp.Data.Tier)
	assert.Equal(t, []string{legacy.RecommendKeepRefining}, resp.Data.Recommendations)
}

func TestEvaluateReadiness_EmptySnapshot(t *testing.T) {
	router := setupLegacyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/legacy/readiness", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data legacy.ReadinessResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 0, resp.Data.Score)
	assert.Equal(t, legacy.TierStartingOut, resp.Data.Tier)
	assert.NotEmpty(t, resp.Data.Recommendations)
}

func TestEvaluateReadiness_RejectsMalformedBody(t *testing.T) {
	router := setupLegacyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/legacy/readiness", strings.NewReader(`{"message_count":"many"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
