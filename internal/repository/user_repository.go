// Package repository provides the data access layer. Each repository is an
// interface with a MySQL implementation so services can be tested against
// mocks.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/database"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/utils"
)

// UserRepository defines methods for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// MySQLUserRepository is a MySQL implementation of UserRepository.
type MySQLUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.Pool) UserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create adds a new user to the database. Email uniqueness is enforced by
// the database; a violation surfaces as a duplicate error.
func (r *MySQLUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	user.CreatedAt = time.Now()

	query := `
        INSERT INTO users (email, name, password_hash, created_at)
        VALUES (?, ?, ?, ?)
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
	)

	utils.LogDBQuery(query, time.Since(startTime), err)

	if err != nil {
		// 1062 is the MySQL error code for a duplicate key
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return utils.NewDuplicateError("User", "email", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted user ID: %w", err)
	}
	user.ID = id

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created")

	return nil
}

// GetByEmail retrieves a user by email. The lookup is exact; emails are
// stored and compared as given, with no normalization.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT id, email, name, password_hash, created_at
        FROM users
        WHERE email = ?
    `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	utils.LogDBQuery(query, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	query := `
        SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)
    `

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	utils.LogDBQuery(query, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}

	return exists, nil
}
