package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/models"
)

type chatMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user model"`
	Content string `json:"content" binding:"required"`
}

type chatRequest struct {
	Query   string               `json:"query" binding:"required"`
	History []chatMessageRequest `json:"history" binding:"dive"`
}

// HandleChat answers one tutor question. The transcript lives on the client
// and is replayed in full on every request; nothing is stored here.
func HandleChat(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history := make([]models.ChatMessage, len(req.History))
	for i, m := range req.History {
		history[i] = models.ChatMessage{Role: m.Role, Content: m.Content}
	}

	out, err := LLM.Chat(c.Request.Context(), llm.ChatInput{Query: req.Query, History: history})
	if err != nil {
		logger.Get().Error("chat generation failed",
			zap.String("user_id", claims.Sub),
			zap.Bool("retryable", llm.IsRetryable(err)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "El tutor no pudo responder. Inténtalo de nuevo."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": out.Answer})
}
