// Package migrations provides database schema management.
//
// Executed migrations are tracked in a dedicated migrations table so each
// one runs exactly once; the whole process is idempotent and safe to run
// on every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/database"
)

// Migration represents a database migration. Each migration performs one
// schema change and is tracked to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table affected by this migration, used for existence checks
	TableName string
	// RunSQL is the function that executes the migration SQL within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations runs all pending database migrations. It creates the
// migrations table if missing, then runs every migration that has not been
// recorded yet, skipping ones whose table already exists.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun := 0

	for _, migration := range migrations {
		if _, ok := executedMigrations[migration.Name]; ok {
			continue
		}

		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		if exists {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, migration.Name, migration.Description); err != nil {
				return fmt.Errorf("failed to record existing migration: %w", err)
			}
		} else {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Running migration")

			if err := m.runMigration(ctx, migration); err != nil {
				return err
			}
			migrationsRun++
		}
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the migrations table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of migrations that already ran.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM migrations`
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrations[name] = true
	}

	return migrations, rows.Err()
}

// runMigration runs a migration within a transaction. If the migration
// fails, the transaction is rolled back.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		query := `INSERT INTO migrations (name, description) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		return nil
	})
}

// recordMigration records a migration as completed without running the SQL.
func (m *Migrator) recordMigration(ctx context.Context, name, description string) error {
	query := `INSERT INTO migrations (name, description) VALUES (?, ?)`
	if _, err := m.db.ExecContext(ctx, query, name, description); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// tableExists checks if a table exists in the current database schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1
        FROM information_schema.tables
        WHERE table_schema = DATABASE()
        AND table_name = ?)
    `
	var exists bool
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	return exists, err
}
