package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRivas11/studio/cache"
	"github.com/MiguelRivas11/studio/llm"
)

func healthRouter(gen llm.Generator) *gin.Engine {
	LLM = gen
	HealthCache = cache.NewMemoryCache()
	router := gin.New()
	router.POST("/api/health", authAs("user-1"), HandleHealthAssessment)
	return router
}

func TestHealthAssessmentCachesByInput(t *testing.T) {
	mock := &llm.MockGenerator{HealthOut: &llm.HealthOutput{Recommendations: "Reduce tus gastos hormiga y construye un fondo de emergencia."}}
	router := healthRouter(mock)

	snapshot := gin.H{
		"income":   3000.0,
		"expenses": 2200.0,
		"debt":     500.0,
		"savings":  800.0,
		"goals":    "comprar una casa",
	}

	w := performJSON(t, router, http.MethodPost, "/api/health", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["cached"])
	assert.Equal(t, 1, mock.HealthCalls)

	// Identical snapshot: served from cache, no second model call.
	w = performJSON(t, router, http.MethodPost, "/api/health", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["cached"])
	assert.Equal(t, "Reduce tus gastos hormiga y construye un fondo de emergencia.", body["recommendations"])
	assert.Equal(t, 1, mock.HealthCalls)

	// Any changed field misses the cache.
	snapshot["debt"] = 600.0
	w = performJSON(t, router, http.MethodPost, "/api/health", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mock.HealthCalls)
}

func TestHealthAssessmentRejectsNegativeAmounts(t *testing.T) {
	mock := &llm.MockGenerator{}
	router := healthRouter(mock)

	w := performJSON(t, router, http.MethodPost, "/api/health", gin.H{
		"income":   -1.0,
		"expenses": 100.0,
		"goals":    "ahorrar",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.HealthCalls)
}

func TestHealthAssessmentRequiresGoals(t *testing.T) {
	router := healthRouter(&llm.MockGenerator{})

	w := performJSON(t, router, http.MethodPost, "/api/health", gin.H{
		"income":   3000.0,
		"expenses": 2000.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAssessmentGenerationFailure(t *testing.T) {
	mock := &llm.MockGenerator{Err: &llm.GenerationError{Kind: llm.ErrMalformedOutput, Task: "health"}}
	router := healthRouter(mock)

	w := performJSON(t, router, http.MethodPost, "/api/health", gin.H{
		"income": 100.0,
		"goals":  "salir de deudas",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
