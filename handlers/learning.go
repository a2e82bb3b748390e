package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/fanout"
	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/mongodb"
)

type generateLearningPathRequest struct {
	Level               string `json:"current_knowledge_level" binding:"required,oneof=principiante intermedio avanzado"`
	FinancialGoals      string `json:"financial_goals" binding:"required,min=10,max=500"`
	FinancialBackground string `json:"financial_background" binding:"required,min=10,max=1000"`
}

// GenerateLearningPath generates a personalized path and fans it out into
// parent, module and lesson documents in one atomic batch. The request blocks
// until the path is ready; a failed batch means nothing was created.
func GenerateLearningPath(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req generateLearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := llm.LearningPathInput{
		Level:               req.Level,
		FinancialGoals:      req.FinancialGoals,
		FinancialBackground: req.FinancialBackground,
	}

	result, err := LLM.LearningPath(c.Request.Context(), in)
	if err != nil {
		logger.Get().Error("learning path generation failed",
			zap.String("user_id", claims.Sub),
			zap.Bool("retryable", llm.IsRetryable(err)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "No pudimos generar tu ruta de aprendizaje. Inténtalo de nuevo."})
		return
	}

	path, err := fanout.PersistLearningPath(c.Request.Context(), PathStore, claims.Sub, in, result)
	if err != nil {
		logger.Get().Error("learning path persistence failed",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No pudimos guardar tu ruta de aprendizaje."})
		return
	}

	logger.Get().Info("learning path created",
		zap.String("user_id", claims.Sub),
		zap.String("path_id", path.ID),
		zap.Int("modules", len(path.Modules)))
	c.JSON(http.StatusCreated, path)
}

// GetLearningPath returns the user's active path with modules and lessons in
// display order.
func GetLearningPath(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	path, err := mongodb.GetActiveLearningPath(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching learning path",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if path == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tienes una ruta de aprendizaje activa."})
		return
	}

	c.JSON(http.StatusOK, path)
}

// DeleteLearningPath cascades over the path's modules and lessons in one
// batch, detached from the response.
func DeleteLearningPath(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	id := c.Param("id")
	path, err := mongodb.GetLearningPath(c, claims.Sub, id)
	if err != nil {
		logger.Get().Error("error fetching learning path",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if path == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta de aprendizaje no encontrada."})
		return
	}

	userID := claims.Sub
	WriteQueue.Enqueue("users/"+userID+"/learningPaths/"+id, func(ctx context.Context) error {
		return fanout.DeleteLearningPath(ctx, PathStore, path)
	})

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}
