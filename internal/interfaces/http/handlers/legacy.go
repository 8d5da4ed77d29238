// internal/interfaces/http/handlers/legacy.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/legacy"
	"github.com/your-org/glowing-legacy-backend/internal/interfaces/http/middleware"
)

// LegacyHandler handles legacy readiness endpoints
type LegacyHandler struct {
	legacyService *legacy.Service
	config        *config.Config
}

// NewLegacyHandler creates a new legacy readiness handler
func NewLegacyHandler(counters legacy.CounterSource, cfg *config.Config) *LegacyHandler {
	return &LegacyHandler{
		legacyService: legacy.NewService(counters),
		config:        cfg,
	}
}

// EvaluateReadiness handles POST /legacy/readiness - scores a caller
// supplied snapshot without touching stored data
func (h *LegacyHandler) EvaluateReadiness(c *gin.Context) {
	var input legacy.ReadinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result := h.legacyService.Evaluate(input)

	c.JSON(http.StatusOK, gin.H{
		"message": "Readiness evaluated successfully",
		"data":    result,
	})
}

// GetReadiness handles GET /legacy/readiness - scores the
// authenticated user's stored legacy content
func (h *LegacyHandler) GetReadiness(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	result, err := h.legacyService.EvaluateForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to evaluate readiness",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Readiness evaluated successfully",
		"data":    result,
	})
}
