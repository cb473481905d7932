package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) AuditLogRepositoryInterface {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, e *entity.AuditLogEntry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	query := `INSERT INTO audit_logs
		(id, category, entity_type, entity_id, action, actor_id, before_snapshot, after_snapshot,
		 ai_model, ai_prompt, ai_response, channel, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Category, e.EntityType, e.EntityID, e.Action, e.ActorID,
		nullableJSON(e.Before), nullableJSON(e.After),
		e.AIModel, e.AIPrompt, e.AIResponse, e.Channel, e.IPAddress, e.UserAgent, e.CreatedAt)
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *AuditLogRepository) HasDedupMarker(ctx context.Context, messageID string, since time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2 AND action = $3 AND created_at > $4`
	err := r.db.QueryRowContext(ctx, query,
		entity.EntityWhatsAppMessage, messageID, entity.ActionDedupMarker, since).Scan(&count)
	return count > 0, err
}

func (r *AuditLogRepository) GetByEntity(ctx context.Context, entityType, entityID string, from, to time.Time) ([]entity.AuditLogEntry, error) {
	query := `SELECT id, category, entity_type, entity_id, action, actor_id,
		COALESCE(before_snapshot, 'null'), COALESCE(after_snapshot, 'null'),
		COALESCE(ai_model, ''), COALESCE(ai_prompt, ''), COALESCE(ai_response, ''),
		COALESCE(channel, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2 AND created_at BETWEEN $3 AND $4
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		err := rows.Scan(&e.ID, &e.Category, &e.EntityType, &e.EntityID, &e.Action, &e.ActorID,
			&e.Before, &e.After, &e.AIModel, &e.AIPrompt, &e.AIResponse,
			&e.Channel, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
