package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/database/postgres"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dedup"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/sirupsen/logrus"
)

// Recorder appends entries to the audit log. Record never fails the caller's
// primary operation; RecordStrict exists for the dedicated logging endpoint,
// where the write itself is the primary operation.
type Recorder struct {
	repo postgres.AuditLogRepositoryInterface
}

func NewRecorder(repo postgres.AuditLogRepositoryInterface) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, e *entity.AuditLogEntry) string {
	id, err := r.repo.Append(ctx, e)
	if err != nil {
		logrus.Errorf("audit log append failed (%s/%s %s): %v", e.EntityType, e.EntityID, e.Action, err)
		return ""
	}
	return id
}

func (r *Recorder) RecordStrict(ctx context.Context, e *entity.AuditLogEntry) (string, error) {
	return r.repo.Append(ctx, e)
}

func (r *Recorder) GetByEntity(ctx context.Context, entityType, entityID string, from, to time.Time) ([]entity.AuditLogEntry, error) {
	return r.repo.GetByEntity(ctx, entityType, entityID, from, to)
}

// HasMarker and WriteMarker let the Recorder double as the durable tier of
// the dedup check, keeping the audit log the single source of truth.
func (r *Recorder) HasMarker(ctx context.Context, messageID string, since time.Time) (bool, error) {
	return r.repo.HasDedupMarker(ctx, messageID, since)
}

func (r *Recorder) WriteMarker(ctx context.Context, messageID, sourceID string, at time.Time) error {
	after, _ := json.Marshal(map[string]string{"phone": sourceID})
	_, err := r.repo.Append(ctx, &entity.AuditLogEntry{
		Category:   entity.LogCategoryWebhook,
		EntityType: entity.EntityWhatsAppMessage,
		EntityID:   messageID,
		Action:     entity.ActionDedupMarker,
		Channel:    entity.ChannelWhatsApp,
		After:      after,
		CreatedAt:  at,
	})
	return err
}

var _ dedup.MarkerStore = (*Recorder)(nil)
