package entity

import (
	"encoding/json"
	"time"
)

const (
	LogCategorySystem       = "system"
	LogCategoryNotification = "notification"
	LogCategoryWebhook      = "webhook"
	LogCategoryTicket       = "ticket"
	LogCategoryAI           = "ai"
)

const (
	ChannelWeb      = "web"
	ChannelWhatsApp = "whatsapp"
)

// Dedup markers are ordinary audit entries with a fixed entity type and
// action, so the audit log doubles as the durable dedup tier.
const (
	EntityWhatsAppMessage = "whatsapp_message"
	ActionDedupMarker     = "dedup_marker"
)

// AuditLogEntry is one append-only row in the audit log.
type AuditLogEntry struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     string          `json:"action"`
	ActorID    *string         `json:"actor_id,omitempty"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	AIModel    string          `json:"ai_model,omitempty"`
	AIPrompt   string          `json:"ai_prompt,omitempty"`
	AIResponse string          `json:"ai_response,omitempty"`
	Channel    string          `json:"channel,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
