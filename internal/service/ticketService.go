package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	"github.com/saulloallves/central-tickets-94-sub006/internal/database/postgres"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dispatcher"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/sirupsen/logrus"
)

type ticketService struct {
	repo          postgres.TicketRepositoryInterface
	notifications NotificationService
	whatsapp      dispatcher.WhatsAppSender
	recorder      *audit.Recorder
	panelBaseURL  string
}

func NewTicketService(
	repo postgres.TicketRepositoryInterface,
	notifications NotificationService,
	whatsapp dispatcher.WhatsAppSender,
	recorder *audit.Recorder,
	panelBaseURL string,
) TicketService {
	return &ticketService{
		repo:          repo,
		notifications: notifications,
		whatsapp:      whatsapp,
		recorder:      recorder,
		panelBaseURL:  panelBaseURL,
	}
}

func (s *ticketService) UpdateTicket(ctx context.Context, req *entity.TicketUpdateRequest) (*entity.Ticket, error) {
	if req.TicketID == "" {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrMissingTicketID)
	}
	if req.Updates.Empty() {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrEmptyTicketPatch)
	}

	ticket, err := s.repo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, entity.ErrTicketNotFound
	}

	before, _ := json.Marshal(ticket)
	statusChanged := false

	if req.Updates.Status != nil && *req.Updates.Status != ticket.Status {
		ticket.Status = *req.Updates.Status
		statusChanged = true
	}
	if req.Updates.Priority != nil {
		ticket.Priority = *req.Updates.Priority
	}
	if req.Updates.AssignedTo != nil {
		ticket.AssignedTo = req.Updates.AssignedTo
	}
	ticket.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	after, _ := json.Marshal(ticket)
	var actor *string
	if req.ActorID != "" {
		actor = &req.ActorID
	}
	s.recorder.Record(ctx, &entity.AuditLogEntry{
		Category:   entity.LogCategoryTicket,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Action:     "updated",
		ActorID:    actor,
		Before:     before,
		After:      after,
		Channel:    entity.ChannelWeb,
	})

	if statusChanged && ticket.EquipeID != "" {
		payload, _ := json.Marshal(map[string]string{"ticket_id": ticket.ID, "status": ticket.Status})
		_, err := s.notifications.Dispatch(ctx, &entity.DispatchRequest{
			Title:     fmt.Sprintf("Ticket %q mudou para %s", ticket.Title, ticket.Status),
			Type:      entity.TypeTicket,
			EquipeID:  ticket.EquipeID,
			Payload:   payload,
			CreatedBy: req.ActorID,
		})
		if err != nil {
			logrus.Warnf("status change notification for ticket %s failed: %v", ticket.ID, err)
		}
	}

	return ticket, nil
}

// ForwardTicket sends the ticket as a rich link message to a phone, e.g. to
// hand a franchisee conversation to another unit. Returns the gateway status.
func (s *ticketService) ForwardTicket(ctx context.Context, req *entity.TicketForwardRequest) (*entity.Ticket, int, error) {
	if req.TicketID == "" {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrMissingTicketID)
	}
	if req.Phone == "" {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrMissingPhone)
	}

	ticket, err := s.repo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, 0, entity.ErrTicketNotFound
	}

	linkURL := req.LinkURL
	if linkURL == "" {
		linkURL = fmt.Sprintf("%s/tickets/%s", s.panelBaseURL, ticket.ID)
	}

	resp, err := s.whatsapp.SendLink(ctx, &dispatcher.LinkMessage{
		Phone:           req.Phone,
		Message:         fmt.Sprintf("Ticket encaminhado: %s", ticket.Title),
		Image:           req.Image,
		LinkURL:         linkURL,
		Title:           ticket.Title,
		LinkDescription: ticket.Description,
	})
	if err != nil {
		return nil, 0, err
	}

	s.recorder.Record(ctx, &entity.AuditLogEntry{
		Category:   entity.LogCategoryTicket,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Action:     "forwarded",
		Channel:    entity.ChannelWhatsApp,
	})

	payload, _ := json.Marshal(map[string]string{"ticket_id": ticket.ID, "phone": req.Phone})
	if _, err := s.notifications.Dispatch(ctx, &entity.DispatchRequest{
		Title:    fmt.Sprintf("Ticket %q encaminhado", ticket.Title),
		Type:     entity.TypeTicketForwarded,
		EquipeID: ticket.EquipeID,
		Payload:  payload,
	}); err != nil {
		logrus.Warnf("forward notification for ticket %s failed: %v", ticket.ID, err)
	}

	return ticket, resp.StatusCode, nil
}
