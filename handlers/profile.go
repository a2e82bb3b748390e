package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/db"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/models"
)

type updateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	PhotoURL    string `json:"photo_url"`
}

func GetProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	profile, err := db.GetProfile(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching profile",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		// First visit: derive the profile from the identity provider claims.
		profile = &models.Profile{
			UserID: claims.Sub,
			Email:  claims.Email,
		}
	}

	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &models.Profile{
		UserID:      claims.Sub,
		DisplayName: req.DisplayName,
		Email:       claims.Email,
		PhotoURL:    req.PhotoURL,
	}

	if err := db.UpsertProfile(c, profile); err != nil {
		logger.Get().Error("error updating profile",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Get().Info("profile updated", zap.String("user_id", claims.Sub))
	c.JSON(http.StatusOK, profile)
}
