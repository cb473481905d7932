package transport

import (
	"net/http"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	recorder *audit.Recorder
}

func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// CreateLog is the one place where a failed audit write is surfaced to the
// caller: here the write IS the primary operation.
func (h *AuditHandler) CreateLog(c *gin.Context) {
	var entry entity.AuditLogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if entry.Category == "" || entry.EntityType == "" || entry.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category, entity_type and action are required"})
		return
	}

	entry.IPAddress = c.ClientIP()
	entry.UserAgent = c.Request.UserAgent()

	id, err := h.recorder.RecordStrict(c.Request.Context(), &entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record log entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *AuditHandler) GetLogs(c *gin.Context) {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")
	if entityType == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_type and entity_id are required"})
		return
	}

	from := time.Time{}
	to := time.Now()
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		to = parsed
	}

	entries, err := h.recorder.GetByEntity(c.Request.Context(), entityType, entityID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logs": entries, "count": len(entries)})
}
