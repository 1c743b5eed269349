// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
	"github.com/pitchscout/pitchscout/users/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// postgresUserRepository implements UserRepository using raw SQL queries
type postgresUserRepository struct {
	client *postgres.Client
}

// NewPostgresUserRepository creates a new PostgreSQL repository for users
func NewPostgresUserRepository(client *postgres.Client) UserRepository {
	return &postgresUserRepository{client: client}
}

// FindByID retrieves a user by ID
func (r *postgresUserRepository) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, display_name, avatar, system_role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// Exists reports whether a user with the given ID exists
func (r *postgresUserRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &exists, query, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
