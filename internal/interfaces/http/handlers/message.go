// internal/interfaces/http/handlers/message.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
	"github.com/your-org/glowing-legacy-backend/internal/interfaces/http/middleware"
)

// MessageHandler handles video message, gift plan, scheduled delivery
// and emergency contact endpoints
type MessageHandler struct {
	messageService *message.Service
	config         *config.Config
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *message.Service, cfg *config.Config) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		config:         cfg,
	}
}

// Service exposes the underlying message service for wiring into the
// readiness scorer
func (h *MessageHandler) Service() *message.Service {
	return h.messageService
}

// CreateMessage handles POST /messages
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req message.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.messageService.CreateMessage(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message created successfully",
		"data":    msg,
	})
}

// GetMessages handles GET /messages
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messages, err := h.messageService.GetMessages(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages retrieved successfully",
		"data": gin.H{
			"messages": messages,
			"count":    len(messages),
		},
	})
}

// GetMessage handles GET /messages/:id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	msg, err := h.messageService.GetMessage(c.Request.Context(), userID, messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message retrieved successfully",
		"data":    msg,
	})
}

// UpdateMessage handles PUT /messages/:id
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var req message.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.messageService.UpdateMessage(c.Request.Context(), userID, messageID, &req)
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message updated successfully",
		"data":    msg,
	})
}

// DeleteMessage handles DELETE /messages/:id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), userID, messageID); err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted successfully",
	})
}

// CreateGiftPlan handles POST /gift-plans
func (h *MessageHandler) CreateGiftPlan(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req message.CreateGiftPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	plan, err := h.messageService.CreateGiftPlan(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gift plan created successfully",
		"data":    plan,
	})
}

// GetGiftPlans handles GET /gift-plans
func (h *MessageHandler) GetGiftPlans(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	plans, err := h.messageService.GetGiftPlans(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gift plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gift plans retrieved successfully",
		"data": gin.H{
			"gift_plans": plans,
			"count":      len(plans),
		},
	})
}

// DeleteGiftPlan handles DELETE /gift-plans/:id
func (h *MessageHandler) DeleteGiftPlan(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gift plan ID"})
		return
	}

	if err := h.messageService.DeleteGiftPlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, message.ErrGiftPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gift plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gift plan deleted successfully",
	})
}

// ScheduleDelivery handles POST /deliveries
func (h *MessageHandler) ScheduleDelivery(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req message.ScheduleDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	delivery, err := h.messageService.ScheduleDelivery(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, message.ErrDeliveryInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery time must be in the future"})
		case errors.Is(err, message.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case errors.Is(err, message.ErrGiftPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift plan not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule delivery"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Delivery scheduled successfully",
		"data":    delivery,
	})
}

// GetDeliveries handles GET /deliveries
func (h *MessageHandler) GetDeliveries(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deliveries, err := h.messageService.GetDeliveries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deliveries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deliveries retrieved successfully",
		"data": gin.H{
			"deliveries": deliveries,
			"count":      len(deliveries),
		},
	})
}

// CancelDelivery handles POST /deliveries/:id/cancel
func (h *MessageHandler) CancelDelivery(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery ID"})
		return
	}

	delivery, err := h.messageService.CancelDelivery(c.Request.Context(), userID, deliveryID)
	if err != nil {
		switch {
		case errors.Is(err, message.ErrDeliveryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		case errors.Is(err, message.ErrDeliveryNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Delivery is no longer pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel delivery"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery cancelled successfully",
		"data":    delivery,
	})
}

// UpsertEmergencyContact handles PUT /emergency-contact
func (h *MessageHandler) UpsertEmergencyContact(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req message.UpsertEmergencyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	contact, err := h.messageService.UpsertEmergencyContact(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save emergency contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Emergency contact saved successfully",
		"data":    contact,
	})
}

// GetEmergencyContact handles GET /emergency-contact
func (h *MessageHandler) GetEmergencyContact(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contact, err := h.messageService.GetEmergencyContact(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, message.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Emergency contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve emergency contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Emergency contact retrieved successfully",
		"data":    contact,
	})
}

// DeleteEmergencyContact handles DELETE /emergency-contact
func (h *MessageHandler) DeleteEmergencyContact(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.messageService.DeleteEmergencyContact(c.Request.Context(), userID); err != nil {
		if errors.Is(err, message.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Emergency contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete emergency contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Emergency contact deleted successfully",
	})
}
