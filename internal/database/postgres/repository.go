package postgres

import (
	"context"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
)

type NotificationRepositoryInterface interface {
	// Create persists the notification and its recipient rows in one
	// transaction, so recipients are queryable before Dispatch returns.
	Create(ctx context.Context, n *entity.Notification, recipients []entity.NotificationRecipient) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	GetRecipients(ctx context.Context, notificationID string) ([]entity.NotificationRecipient, error)
}

type AuditLogRepositoryInterface interface {
	Append(ctx context.Context, e *entity.AuditLogEntry) (string, error)
	// HasDedupMarker reports whether a marker for messageID exists with
	// created_at after since. Must stay a bounded point query.
	HasDedupMarker(ctx context.Context, messageID string, since time.Time) (bool, error)
	GetByEntity(ctx context.Context, entityType, entityID string, from, to time.Time) ([]entity.AuditLogEntry, error)
}

type TeamRepositoryInterface interface {
	GetActiveMemberIDs(ctx context.Context, equipeID string) ([]string, error)
}

type TicketRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	Update(ctx context.Context, t *entity.Ticket) error
}
