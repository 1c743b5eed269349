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
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
	"github.com/pitchscout/pitchscout/players/models"
)

// Repository errors
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// postgresPlayerRepository implements PlayerRepository using raw SQL queries
type postgresPlayerRepository struct {
	client *postgres.Client
}

// NewPostgresPlayerRepository creates a new PostgreSQL repository for players
func NewPostgresPlayerRepository(client *postgres.Client) PlayerRepository {
	return &postgresPlayerRepository{client: client}
}

// FindByID retrieves a player by ID
func (r *postgresPlayerRepository) FindByID(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	query := `
		SELECT id, full_name, position, club, nationality, birth_year, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	var player models.Player
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &player, query, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	return &player, nil
}

// Exists reports whether a player with the given ID exists
func (r *postgresPlayerRepository) Exists(ctx context.Context, playerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &exists, query, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to check player existence: %w", err)
	}
	return exists, nil
}

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for player comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	query := `
		INSERT INTO player_comments (
			id, player_id, parent_comment_id, owner_user_id, content,
			upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		) VALUES (
			:id, :player_id, :parent_comment_id, :owner_user_id, :content,
			:upvotes, :downvotes, :is_featured, :is_deleted, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, player_id, parent_comment_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM player_comments
		WHERE id = $1
	`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

// FindByPlayerID retrieves top-level comments for a player, newest first
func (r *postgresCommentRepository) FindByPlayerID(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT id, player_id, parent_comment_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM player_comments
		WHERE player_id = $1 AND parent_comment_id IS NULL AND is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &comments, query, playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments for player: %w", err)
	}
	return comments, nil
}

// FindReplies retrieves nested comments of a parent comment, oldest first
func (r *postgresCommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT id, player_id, parent_comment_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM player_comments
		WHERE parent_comment_id = $1 AND is_deleted = FALSE
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &comments, query, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find nested comments: %w", err)
	}
	return comments, nil
}

// GetVoteCounters returns the current denormalized counters for a comment
func (r *postgresCommentRepository) GetVoteCounters(ctx context.Context, commentID uuid.UUID) (int64, int64, bool, error) {
	query := `SELECT upvotes, downvotes, is_deleted FROM player_comments WHERE id = $1`

	var row struct {
		Upvotes   int64 `db:"upvotes"`
		Downvotes int64 `db:"downvotes"`
		IsDeleted bool  `db:"is_deleted"`
	}
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &row, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return 0, 0, false, fmt.Errorf("failed to read comment counters: %w", err)
	}
	return row.Upvotes, row.Downvotes, row.IsDeleted, nil
}

// ApplyVoteDelta atomically adjusts the denormalized vote counters
func (r *postgresCommentRepository) ApplyVoteDelta(ctx context.Context, commentID uuid.UUID, upDelta, downDelta int) error {
	query := `
		UPDATE player_comments
		SET upvotes = upvotes + $2, downvotes = downvotes + $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, commentID, upDelta, downDelta)
	if err != nil {
		return fmt.Errorf("failed to apply vote delta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
	}
	return nil
}

// SetFeatured toggles the featured flag
func (r *postgresCommentRepository) SetFeatured(ctx context.Context, commentID uuid.UUID, featured bool) error {
	query := `UPDATE player_comments SET is_featured = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, commentID, featured)
	if err != nil {
		return fmt.Errorf("failed to set featured flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
	}
	return nil
}

// Delete soft deletes a comment
func (r *postgresCommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	query := `UPDATE player_comments SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
	}
	return nil
}

// WithTransaction executes fn within a database transaction
func (r *postgresCommentRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}
