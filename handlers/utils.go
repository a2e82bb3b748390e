package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MiguelRivas11/studio/cache"
	"github.com/MiguelRivas11/studio/docsync"
	"github.com/MiguelRivas11/studio/fanout"
	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/models"
)

// Collaborators wired in from main.
var (
	LLM         llm.Generator
	HealthCache cache.Cache
	WriteQueue  *docsync.Queue
	PathStore   fanout.BatchStore
)

// currentClaims pulls the authenticated user's claims set by the auth
// middleware. When missing it writes the 401 itself and reports false.
func currentClaims(c *gin.Context) (*models.SupabaseClaims, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	claims, ok := user.(*models.SupabaseClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user claims"})
		return nil, false
	}

	return claims, true
}
