package transport

import (
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
	"github.com/saulloallves/central-tickets-94-sub006/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	var req entity.TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.UpdateTicket(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}

func (h *TicketHandler) ForwardTicket(c *gin.Context) {
	var req entity.TicketForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, gatewayStatus, err := h.service.ForwardTicket(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"ticket":         ticket,
		"gateway_status": gatewayStatus,
	})
}
