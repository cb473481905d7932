package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) TeamRepositoryInterface {
	return &TeamRepository{db: db}
}

// GetActiveMemberIDs resolves membership at call time, so team changes are
// always reflected at send time.
func (r *TeamRepository) GetActiveMemberIDs(ctx context.Context, equipeID string) ([]string, error) {
	query := `SELECT user_id FROM equipe_members WHERE equipe_id = $1 AND ativo = TRUE`
	rows, err := r.db.QueryContext(ctx, query, equipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
