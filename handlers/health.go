package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/logger"
)

const healthCacheTTL = time.Hour

type healthRequest struct {
	Income   float64 `json:"income" binding:"gte=0"`
	Expenses float64 `json:"expenses" binding:"gte=0"`
	Debt     float64 `json:"debt" binding:"gte=0"`
	Savings  float64 `json:"savings" binding:"gte=0"`
	Goals    string  `json:"goals" binding:"required"`
}

func healthCacheKey(req healthRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return "health:" + hex.EncodeToString(sum[:])
}

// HandleHealthAssessment turns a transient financial snapshot into
// recommendation text. Neither input nor output is stored as a document;
// identical assessments are served from cache instead of re-querying the
// model.
func HandleHealthAssessment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req healthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := healthCacheKey(req)
	if cached, ok := HealthCache.Get(c, key); ok {
		c.JSON(http.StatusOK, gin.H{"recommendations": cached, "cached": true})
		return
	}

	out, err := LLM.HealthRecommendations(c.Request.Context(), llm.HealthInput{
		Income:   req.Income,
		Expenses: req.Expenses,
		Debt:     req.Debt,
		Savings:  req.Savings,
		Goals:    req.Goals,
	})
	if err != nil {
		logger.Get().Error("health recommendation failed",
			zap.String("user_id", claims.Sub),
			zap.Bool("retryable", llm.IsRetryable(err)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "No pudimos evaluar tu salud financiera. Inténtalo de nuevo."})
		return
	}

	if err := HealthCache.Set(c, key, out.Recommendations, healthCacheTTL); err != nil {
		logger.Get().Warn("failed to cache recommendations", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": out.Recommendations, "cached": false})
}
