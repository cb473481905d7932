package postgres

import (
	"context"
	"database/sql"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	_ "github.com/lib/pq"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepositoryInterface {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification, recipients []entity.NotificationRecipient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO notifications (id, title, message, type, equipe_id, payload, created_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err = tx.ExecContext(ctx, query,
		n.ID, n.Title, n.Message, string(n.Type), n.EquipeID, nullableJSON(n.Payload), n.CreatedBy, n.CreatedAt)
	if err != nil {
		return err
	}

	recipientQuery := `INSERT INTO notification_recipients (id, notification_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)`
	for _, rec := range recipients {
		if _, err := tx.ExecContext(ctx, recipientQuery, rec.ID, rec.NotificationID, rec.UserID, rec.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	var n entity.Notification
	var equipeID sql.NullString
	var payload []byte
	query := `SELECT id, title, COALESCE(message, ''), type, COALESCE(equipe_id, ''), payload, created_by, created_at
		FROM notifications WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.Title, &n.Message, &n.Type, &equipeID, &payload, &n.CreatedBy, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	n.EquipeID = equipeID.String
	n.Payload = payload
	return &n, nil
}

func (r *NotificationRepository) GetRecipients(ctx context.Context, notificationID string) ([]entity.NotificationRecipient, error) {
	query := `SELECT id, notification_id, user_id, read_at, created_at
		FROM notification_recipients WHERE notification_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []entity.NotificationRecipient
	for rows.Next() {
		var rec entity.NotificationRecipient
		if err := rows.Scan(&rec.ID, &rec.NotificationID, &rec.UserID, &rec.ReadAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}

	return recipients, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
