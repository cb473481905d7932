package postgres

import (
	"context"
	"database/sql"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	_ "github.com/lib/pq"
)

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepositoryInterface {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var t entity.Ticket
	query := `SELECT id, title, COALESCE(description, ''), status, COALESCE(priority, ''),
		COALESCE(equipe_id, ''), COALESCE(franchisee_id, ''), COALESCE(phone, ''),
		assigned_to, created_at, updated_at
		FROM tickets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.EquipeID, &t.FranchiseeID, &t.Phone, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *entity.Ticket) error {
	query := `UPDATE tickets SET status = $2, priority = NULLIF($3, ''), assigned_to = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Status, t.Priority, t.AssignedTo, t.UpdatedAt)
	return err
}
