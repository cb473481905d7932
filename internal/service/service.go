package service

import (
	"context"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
)

type NotificationService interface {
	Dispatch(ctx context.Context, req *entity.DispatchRequest) (*entity.DispatchResult, error)
	GetNotification(ctx context.Context, id string) (*entity.Notification, error)
	GetRecipients(ctx context.Context, notificationID string) ([]entity.NotificationRecipient, error)
}

type WebhookService interface {
	HandleInbound(ctx context.Context, msg *entity.InboundMessage, raw []byte) (*entity.InboundResult, error)
}

type TicketService interface {
	UpdateTicket(ctx context.Context, req *entity.TicketUpdateRequest) (*entity.Ticket, error)
	ForwardTicket(ctx context.Context, req *entity.TicketForwardRequest) (*entity.Ticket, int, error)
}
