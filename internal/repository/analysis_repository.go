package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/database"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/utils"
)

// AnalysisRepository defines methods for persisting and querying analysis
// results. Records are append-only; nothing in scope updates or deletes
// them.
type AnalysisRepository interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	ListByUserEmail(ctx context.Context, email string, limit int) ([]*models.AnalysisRecord, error)
}

// MySQLAnalysisRepository is a MySQL implementation of AnalysisRepository.
type MySQLAnalysisRepository struct {
	db *database.Pool
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db *database.Pool) AnalysisRepository {
	return &MySQLAnalysisRepository{
		db: db,
	}
}

// Create inserts a new analysis record. The treatment steps are serialized
// as a JSON array to preserve their order in a single column.
func (r *MySQLAnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	startTime := time.Now()

	record.CreatedAt = time.Now()

	treatment, err := json.Marshal(record.Treatment)
	if err != nil {
		return fmt.Errorf("failed to serialize treatment steps: %w", err)
	}

	query := `
        INSERT INTO analysis_results (user_email, disease, confidence, description, treatment, filename, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		record.UserEmail,
		record.Disease,
		record.Confidence,
		record.Description,
		string(treatment),
		record.Filename,
		record.CreatedAt,
	)

	utils.LogDBQuery(query, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted record ID: %w", err)
	}
	record.ID = id

	log.Info().
		Int64("record_id", record.ID).
		Str("user_email", record.UserEmail).
		Str("disease", record.Disease).
		Msg("Analysis result saved")

	return nil
}

// ListByUserEmail retrieves the most recent analysis records for a user,
// descending by creation time, truncated to limit. Each call re-queries
// current state.
func (r *MySQLAnalysisRepository) ListByUserEmail(ctx context.Context, email string, limit int) ([]*models.AnalysisRecord, error) {
	startTime := time.Now()

	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	query := `
        SELECT id, user_email, disease, confidence, description, treatment, filename, created_at
        FROM analysis_results
        WHERE user_email = ?
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := r.db.QueryContext(ctx, query, email, limit)

	utils.LogDBQuery(query, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.AnalysisRecord, 0, limit)
	for rows.Next() {
		record := &models.AnalysisRecord{}
		var treatment []byte

		if err := rows.Scan(
			&record.ID,
			&record.UserEmail,
			&record.Disease,
			&record.Confidence,
			&record.Description,
			&treatment,
			&record.Filename,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}

		if len(treatment) > 0 {
			if err := json.Unmarshal(treatment, &record.Treatment); err != nil {
				return nil, fmt.Errorf("failed to deserialize treatment steps: %w", err)
			}
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis records: %w", err)
	}

	return records, nil
}
