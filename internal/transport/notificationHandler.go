package transport

import (
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
	"github.com/saulloallves/central-tickets-94-sub006/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req entity.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Dispatch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"notification":    result.Notification,
		"recipient_count": result.RecipientCount,
	})
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id := c.Param("id")

	notification, err := h.service.GetNotification(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notification": notification})
}

func (h *NotificationHandler) GetRecipients(c *gin.Context) {
	id := c.Param("id")

	recipients, err := h.service.GetRecipients(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipients": recipients,
		"count":      len(recipients),
	})
}
