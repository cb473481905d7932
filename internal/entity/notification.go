package entity

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	TypeTicket          NotificationType = "ticket"
	TypeSLA             NotificationType = "sla"
	TypeAlert           NotificationType = "alert"
	TypeInfo            NotificationType = "info"
	TypeCrisis          NotificationType = "crisis"
	TypeTicketForwarded NotificationType = "ticket_forwarded"
)

func (t NotificationType) Valid() bool {
	switch t {
	case TypeTicket, TypeSLA, TypeAlert, TypeInfo, TypeCrisis, TypeTicketForwarded:
		return true
	}
	return false
}

// Notification is the durable in-app record of one logical event.
// Created once together with its recipients, never mutated afterwards.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	Type      NotificationType `json:"type"`
	EquipeID  string           `json:"equipe_id,omitempty"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
	CreatedBy *string          `json:"created_by"` // nil means system-generated
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationRecipient struct {
	ID             string     `json:"id"`
	NotificationID string     `json:"notification_id"`
	UserID         string     `json:"user_id"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type DispatchRequest struct {
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	EquipeID   string           `json:"equipe_id"`
	Recipients []string         `json:"recipients"`
	Payload    json.RawMessage  `json:"payload"`
	CreatedBy  string           `json:"created_by"`
}

type DispatchResult struct {
	Notification   *Notification `json:"notification"`
	RecipientCount int           `json:"recipient_count"`
}
