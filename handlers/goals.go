package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/docsync"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/middleware"
	"github.com/MiguelRivas11/studio/models"
	"github.com/MiguelRivas11/studio/mongodb"
)

type createGoalRequest struct {
	Name         string  `json:"name" binding:"required"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	SavedAmount  float64 `json:"saved_amount" binding:"gte=0"`
}

type goalResponse struct {
	models.Goal
	Completed bool `json:"completed"`
}

func goalResponses(goals []models.Goal) []goalResponse {
	out := make([]goalResponse, len(goals))
	for i, g := range goals {
		out[i] = goalResponse{Goal: g, Completed: g.Completed()}
	}
	return out
}

// ListGoals returns all of the user's savings goals.
func ListGoals(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	goals, err := mongodb.ListGoals(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching goals",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, goalResponses(goals))
}

// CreateGoal allocates the goal id up front and persists detached: the
// response carries the full goal without waiting on the store.
func CreateGoal(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := models.Goal{
		ID:           uuid.NewString(),
		UserID:       claims.Sub,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		CreatedAt:    time.Now().UTC(),
	}

	WriteQueue.Enqueue("users/"+claims.Sub+"/goals/"+goal.ID, func(ctx context.Context) error {
		return mongodb.CreateGoal(ctx, &goal)
	})

	c.JSON(http.StatusAccepted, goalResponse{Goal: goal, Completed: goal.Completed()})
}

// DeleteGoal removes one goal by id, fire-and-forget.
func DeleteGoal(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	id := c.Param("id")
	userID := claims.Sub
	WriteQueue.Enqueue("users/"+userID+"/goals/"+id, func(ctx context.Context) error {
		return mongodb.DeleteGoal(ctx, userID, id)
	})

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

// StreamGoals pushes full goal snapshots over SSE whenever the collection
// changes. EventSource cannot set headers, so the token rides the query
// string.
func StreamGoals(c *gin.Context) {
	tokenString := c.DefaultQuery("token", "")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}
	claims, err := middleware.ParseSupabaseToken(tokenString)
	if err != nil {
		logger.Get().Warn("rejected stream token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}
	userID := claims.Sub

	mirror := docsync.NewMirror(func(ctx context.Context) ([]models.Goal, error) {
		return mongodb.ListGoals(ctx, userID)
	}, 3*time.Second)
	mirror.Start(c.Request.Context())
	defer mirror.Stop()

	sub := mirror.Subscribe()
	defer sub.Cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	logger.Get().Info("goal stream opened", zap.String("user_id", userID))
	c.Stream(func(w io.Writer) bool {
		select {
		case snap := <-sub.C:
			payload := struct {
				State docsync.State  `json:"state"`
				Items []goalResponse `json:"items"`
			}{State: snap.State, Items: goalResponses(snap.Items)}
			data, err := json.Marshal(payload)
			if err != nil {
				logger.Get().Error("error encoding snapshot", zap.Error(err))
				return false
			}
			c.SSEvent("snapshot", string(data))
			return true
		case <-c.Request.Context().Done():
			logger.Get().Info("goal stream closed", zap.String("user_id", userID))
			return false
		}
	})
}
