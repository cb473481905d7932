package entity

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

type Ticket struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority,omitempty"`
	EquipeID     string    `json:"equipe_id,omitempty"`
	FranchiseeID string    `json:"franchisee_id,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	AssignedTo   *string   `json:"assigned_to,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TicketUpdate is a partial patch; nil fields are left untouched.
type TicketUpdate struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssignedTo *string `json:"assigned_to"`
}

func (u *TicketUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.AssignedTo == nil
}

// Request bodies follow the panel's camelCase convention, like the
// gateway's messageId/buttonId on the inbound side.
type TicketUpdateRequest struct {
	TicketID string       `json:"ticketId"`
	Updates  TicketUpdate `json:"updates"`
	ActorID  string       `json:"actorId"`
}

type TicketForwardRequest struct {
	TicketID string `json:"ticketId"`
	Phone    string `json:"phone"`
	LinkURL  string `json:"linkUrl"`
	Image    string `json:"image"`
}
