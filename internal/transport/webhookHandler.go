package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
	"github.com/saulloallves/central-tickets-94-sub006/internal/service"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	service service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// HandleWhatsApp receives gateway callbacks. The raw body is kept for the
// audit trail before the payload is decoded.
func (h *WebhookHandler) HandleWhatsApp(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	var msg entity.InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.service.HandleInbound(c.Request.Context(), &msg, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	// Duplicates answer 200 as well, the gateway must stop redelivering.
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"duplicate": result.Duplicate,
		"processed": result.Processed,
	})
}
