package transport

import (
	"errors"
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses at the boundary:
// validation 400, not-found 404, everything else a generic 500 with a
// non-sensitive message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrMissingPhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrTicketNotFound),
		errors.Is(err, entity.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrGatewayNotConfigured),
		errors.Is(err, entity.ErrPushNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
