package migrations

import (
	"context"
	"database/sql"
)

// createUsersTable creates the users table. Email uniqueness is the only
// constraint the application relies on.
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					id BIGINT AUTO_INCREMENT PRIMARY KEY,
					email VARCHAR(255) NOT NULL,
					name VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createAnalysisResultsTable creates the analysis_results table. user_email
// is a soft reference to users.email; no foreign key is enforced.
func createAnalysisResultsTable() Migration {
	return Migration{
		Name:        "create_analysis_results_table",
		Description: "Creates the analysis_results table",
		TableName:   "analysis_results",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS analysis_results (
					id BIGINT AUTO_INCREMENT PRIMARY KEY,
					user_email VARCHAR(255),
					disease VARCHAR(255) NOT NULL,
					confidence DECIMAL(5, 4) NOT NULL,
					description TEXT,
					treatment TEXT,
					filename VARCHAR(255),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					INDEX idx_user_email (user_email)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// GetMigrations returns all migrations in execution order.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createAnalysisResultsTable(),
	}
}
