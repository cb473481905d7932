package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/saulloallves/central-tickets-94-sub006/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			message TEXT,
			type VARCHAR(32) NOT NULL,
			equipe_id VARCHAR(64),
			payload JSONB,
			created_by VARCHAR(64),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notification_recipients (
			id UUID PRIMARY KEY,
			notification_id UUID REFERENCES notifications(id),
			user_id VARCHAR(64) NOT NULL,
			read_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY,
			category VARCHAR(32) NOT NULL,
			entity_type VARCHAR(64) NOT NULL,
			entity_id VARCHAR(255),
			action VARCHAR(64) NOT NULL,
			actor_id VARCHAR(64),
			before_snapshot JSONB,
			after_snapshot JSONB,
			ai_model VARCHAR(64),
			ai_prompt TEXT,
			ai_response TEXT,
			channel VARCHAR(16),
			ip_address VARCHAR(64),
			user_agent TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS equipe_members (
			id SERIAL PRIMARY KEY,
			equipe_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			ativo BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			status VARCHAR(32) DEFAULT 'open',
			priority VARCHAR(16),
			equipe_id VARCHAR(64),
			franchisee_id VARCHAR(64),
			phone VARCHAR(32),
			assigned_to VARCHAR(64),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes. The (entity_type, entity_id, created_at) index backs the
		// dedup marker window query, which must stay a point lookup.
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recipients_notification_id ON notification_recipients(notification_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipients_user_id ON notification_recipients(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_equipe_members_equipe ON equipe_members(equipe_id, ativo)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
