package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	"github.com/saulloallves/central-tickets-94-sub006/internal/database/postgres"
	redisdb "github.com/saulloallves/central-tickets-94-sub006/internal/database/redis"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dispatcher"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
	"github.com/saulloallves/central-tickets-94-sub006/internal/stream"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type notificationService struct {
	repo            postgres.NotificationRepositoryInterface
	teamRepo        postgres.TeamRepositoryInterface
	teamCache       redisdb.TeamMemberCache
	push            dispatcher.PushSender
	whatsapp        dispatcher.WhatsAppSender
	events          stream.Publisher
	recorder        *audit.Recorder
	alertGroupPhone string
}

// NewNotificationService builds the router. teamCache, push, whatsapp and
// events may be nil; all of them are best-effort collaborators.
func NewNotificationService(
	repo postgres.NotificationRepositoryInterface,
	teamRepo postgres.TeamRepositoryInterface,
	teamCache redisdb.TeamMemberCache,
	push dispatcher.PushSender,
	whatsapp dispatcher.WhatsAppSender,
	events stream.Publisher,
	recorder *audit.Recorder,
	alertGroupPhone string,
) NotificationService {
	return &notificationService{
		repo:            repo,
		teamRepo:        teamRepo,
		teamCache:       teamCache,
		push:            push,
		whatsapp:        whatsapp,
		events:          events,
		recorder:        recorder,
		alertGroupPhone: alertGroupPhone,
	}
}

// Dispatch materializes the notification with its recipient set and fans out
// to the side channels. The in-app insert is the authoritative delivery and
// the only fatal step; push and stream failures are logged and swallowed.
func (s *notificationService) Dispatch(ctx context.Context, req *entity.DispatchRequest) (*entity.DispatchResult, error) {
	if err := validateDispatch(req); err != nil {
		return nil, err
	}

	recipientIDs := s.resolveRecipients(ctx, req)

	var createdBy *string
	if req.CreatedBy != "" {
		createdBy = &req.CreatedBy
	}

	now := time.Now()
	notification := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		EquipeID:  req.EquipeID,
		Payload:   req.Payload,
		CreatedBy: createdBy,
		CreatedAt: now,
	}

	recipients := make([]entity.NotificationRecipient, 0, len(recipientIDs))
	for _, userID := range recipientIDs {
		recipients = append(recipients, entity.NotificationRecipient{
			ID:             uuid.New().String(),
			NotificationID: notification.ID,
			UserID:         userID,
			CreatedAt:      now,
		})
	}

	if err := s.repo.Create(ctx, notification, recipients); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.recorder.Record(ctx, &entity.AuditLogEntry{
		Category:   entity.LogCategoryNotification,
		EntityType: "notification",
		EntityID:   notification.ID,
		Action:     "dispatched",
		ActorID:    createdBy,
		Channel:    entity.ChannelWeb,
	})

	// In-app write is committed at this point, side channels can no longer
	// affect the outcome.
	if s.push != nil && req.Title != "" && (req.Message != "" || len(req.Payload) > 0) {
		pushReq := &dispatcher.PushRequest{
			Title:    req.Title,
			Message:  req.Message,
			UserIDs:  recipientIDs,
			EquipeID: req.EquipeID,
		}
		if len(req.Payload) > 0 {
			pushReq.Data = map[string]interface{}{"payload": req.Payload}
		}
		if err := s.push.Send(ctx, pushReq); err != nil {
			logrus.Warnf("push dispatch failed for notification %s (non-critical): %v", notification.ID, err)
		}
	}

	// Crisis events escalate to the WhatsApp alert group as well.
	if req.Type == entity.TypeCrisis && s.whatsapp != nil && s.alertGroupPhone != "" {
		text := fmt.Sprintf("🚨 *%s*", req.Title)
		if req.Message != "" {
			text += "\n" + req.Message
		}
		if _, err := s.whatsapp.SendText(ctx, s.alertGroupPhone, text); err != nil {
			logrus.Warnf("crisis broadcast to alert group failed: %v", err)
		}
	}

	if s.events != nil {
		if err := s.events.PublishNotification(notification, recipientIDs); err != nil {
			logrus.Warnf("notification stream publish failed for %s: %v", notification.ID, err)
		}
	}

	return &entity.DispatchResult{
		Notification:   notification,
		RecipientCount: len(recipients),
	}, nil
}

func validateDispatch(req *entity.DispatchRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrMissingTitle)
	}
	if req.Type == "" {
		return fmt.Errorf("%w: %w", entity.ErrInvalidInput, entity.ErrMissingType)
	}
	if !req.Type.Valid() {
		return fmt.Errorf("%w: %w %q", entity.ErrInvalidInput, entity.ErrInvalidType, req.Type)
	}
	return nil
}

// resolveRecipients prefers the explicit list; otherwise membership of the
// team is looked up at dispatch time so changes are never stale. The redis
// copy is never read on the happy path: it is a last-known-good fallback for
// when the lookup fails, refreshed on every successful read. Failing both
// degrades to zero recipients, the notification itself is still the durable
// record that the event happened.
func (s *notificationService) resolveRecipients(ctx context.Context, req *entity.DispatchRequest) []string {
	if len(req.Recipients) > 0 {
		return req.Recipients
	}
	if req.EquipeID == "" {
		return nil
	}

	ids, err := s.teamRepo.GetActiveMemberIDs(ctx, req.EquipeID)
	if err == nil {
		if s.teamCache != nil {
			if err := s.teamCache.SetMembers(ctx, req.EquipeID, ids); err != nil {
				logrus.Debugf("team member cache set failed for equipe %s: %v", req.EquipeID, err)
			}
		}
		return ids
	}
	logrus.Warnf("team member lookup failed for equipe %s: %v", req.EquipeID, err)

	if s.teamCache != nil {
		if cached, cacheErr := s.teamCache.GetMembers(ctx, req.EquipeID); cacheErr == nil {
			logrus.Warnf("dispatching to last-known membership of equipe %s", req.EquipeID)
			return cached
		}
	}

	logrus.Warnf("no membership fallback for equipe %s, dispatching with no recipients", req.EquipeID)
	return nil
}

func (s *notificationService) GetNotification(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if n == nil {
		return nil, entity.ErrNotificationNotFound
	}
	return n, nil
}

func (s *notificationService) GetRecipients(ctx context.Context, notificationID string) ([]entity.NotificationRecipient, error) {
	return s.repo.GetRecipients(ctx, notificationID)
}
