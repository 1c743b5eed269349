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
	"github.com/pitchscout/pitchscout/discussions/models"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
)

// Repository errors
var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrReplyNotFound  = errors.New("reply not found")
)

// postgresThreadRepository implements ThreadRepository using raw SQL queries
type postgresThreadRepository struct {
	client *postgres.Client
}

// NewPostgresThreadRepository creates a new PostgreSQL repository for threads
func NewPostgresThreadRepository(client *postgres.Client) ThreadRepository {
	return &postgresThreadRepository{client: client}
}

// FindByID retrieves a thread by ID
func (r *postgresThreadRepository) FindByID(ctx context.Context, threadID uuid.UUID) (*models.Thread, error) {
	query := `
		SELECT id, title, owner_user_id, is_locked, created_at, updated_at
		FROM discussion_threads
		WHERE id = $1
	`

	var thread models.Thread
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &thread, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrThreadNotFound, threadID)
		}
		return nil, fmt.Errorf("failed to find thread: %w", err)
	}

	return &thread, nil
}

// Exists reports whether a thread with the given ID exists
func (r *postgresThreadRepository) Exists(ctx context.Context, threadID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM discussion_threads WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &exists, query, threadID)
	if err != nil {
		return false, fmt.Errorf("failed to check thread existence: %w", err)
	}
	return exists, nil
}

// postgresReplyRepository implements ReplyRepository using raw SQL queries
type postgresReplyRepository struct {
	client *postgres.Client
}

// NewPostgresReplyRepository creates a new PostgreSQL repository for replies
func NewPostgresReplyRepository(client *postgres.Client) ReplyRepository {
	return &postgresReplyRepository{client: client}
}

// Create inserts a new reply
func (r *postgresReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	now := time.Now()
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = now
	}
	reply.UpdatedAt = now

	query := `
		INSERT INTO discussion_replies (
			id, thread_id, parent_reply_id, owner_user_id, content,
			upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		) VALUES (
			:id, :thread_id, :parent_reply_id, :owner_user_id, :content,
			:upvotes, :downvotes, :is_featured, :is_deleted, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, reply)
	if err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}
	return nil
}

// FindByID retrieves a reply by its ID
func (r *postgresReplyRepository) FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	query := `
		SELECT id, thread_id, parent_reply_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM discussion_replies
		WHERE id = $1
	`

	var reply models.Reply
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &reply, query, replyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
		}
		return nil, fmt.Errorf("failed to find reply: %w", err)
	}

	return &reply, nil
}

// FindByThreadID retrieves top-level replies for a thread, newest first
func (r *postgresReplyRepository) FindByThreadID(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	query := `
		SELECT id, thread_id, parent_reply_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM discussion_replies
		WHERE thread_id = $1 AND parent_reply_id IS NULL AND is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var replies []*models.Reply
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &replies, query, threadID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find replies for thread: %w", err)
	}
	return replies, nil
}

// FindReplies retrieves nested replies of a parent reply, oldest first
func (r *postgresReplyRepository) FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	query := `
		SELECT id, thread_id, parent_reply_id, owner_user_id, content,
		       upvotes, downvotes, is_featured, is_deleted, created_at, updated_at
		FROM discussion_replies
		WHERE parent_reply_id = $1 AND is_deleted = FALSE
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var replies []*models.Reply
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &replies, query, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find nested replies: %w", err)
	}
	return replies, nil
}

// GetVoteCounters returns the current denormalized counters for a reply
func (r *postgresReplyRepository) GetVoteCounters(ctx context.Context, replyID uuid.UUID) (int64, int64, bool, error) {
	query := `SELECT upvotes, downvotes, is_deleted FROM discussion_replies WHERE id = $1`

	var row struct {
		Upvotes   int64 `db:"upvotes"`
		Downvotes int64 `db:"downvotes"`
		IsDeleted bool  `db:"is_deleted"`
	}
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &row, query, replyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
		}
		return 0, 0, false, fmt.Errorf("failed to read reply counters: %w", err)
	}
	return row.Upvotes, row.Downvotes, row.IsDeleted, nil
}

// ApplyVoteDelta atomically adjusts the denormalized vote counters
func (r *postgresReplyRepository) ApplyVoteDelta(ctx context.Context, replyID uuid.UUID, upDelta, downDelta int) error {
	query := `
		UPDATE discussion_replies
		SET upvotes = upvotes + $2, downvotes = downvotes + $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, replyID, upDelta, downDelta)
	if err != nil {
		return fmt.Errorf("failed to apply vote delta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
	}
	return nil
}

// SetFeatured toggles the featured flag
func (r *postgresReplyRepository) SetFeatured(ctx context.Context, replyID uuid.UUID, featured bool) error {
	query := `UPDATE discussion_replies SET is_featured = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, replyID, featured)
	if err != nil {
		return fmt.Errorf("failed to set featured flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
	}
	return nil
}

// Delete soft deletes a reply
func (r *postgresReplyRepository) Delete(ctx context.Context, replyID uuid.UUID) error {
	query := `UPDATE discussion_replies SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, replyID)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
	}
	return nil
}

// WithTransaction executes fn within a database transaction
func (r *postgresReplyRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}
