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

	sq "github.com/Masterminds/squirrel"
	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
	"github.com/pitchscout/pitchscout/polls/models"
)

// Repository errors
var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("poll option not found")
)

// postgresPollRepository implements PollRepository using raw SQL queries
type postgresPollRepository struct {
	client *postgres.Client
}

// NewPostgresPollRepository creates a new PostgreSQL repository for polls
func NewPostgresPollRepository(client *postgres.Client) PollRepository {
	return &postgresPollRepository{client: client}
}

// CreatePoll inserts a poll together with its options in one transaction
func (r *postgresPollRepository) CreatePoll(ctx context.Context, poll *models.Poll, options []*models.PollOption) error {
	now := time.Now()
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = now
	}
	poll.UpdatedAt = now

	return r.client.WithTransaction(ctx, func(txCtx context.Context) error {
		pollQuery := `
			INSERT INTO polls (
				id, question, description, poll_type, owner_user_id,
				thread_id, player_id, is_anonymous, is_active, expires_at,
				total_votes, created_at, updated_at
			) VALUES (
				:id, :question, :description, :poll_type, :owner_user_id,
				:thread_id, :player_id, :is_anonymous, :is_active, :expires_at,
				:total_votes, :created_at, :updated_at
			)`

		if _, err := sqlx.NamedExecContext(txCtx, r.client.Executor(txCtx), pollQuery, poll); err != nil {
			return fmt.Errorf("failed to create poll: %w", err)
		}

		optionQuery := `
			INSERT INTO poll_options (id, poll_id, text, vote_count, display_order, created_at)
			VALUES (:id, :poll_id, :text, :vote_count, :display_order, :created_at)`

		for _, option := range options {
			if option.CreatedAt.IsZero() {
				option.CreatedAt = now
			}
			if _, err := sqlx.NamedExecContext(txCtx, r.client.Executor(txCtx), optionQuery, option); err != nil {
				return fmt.Errorf("failed to create poll option: %w", err)
			}
		}

		return nil
	})
}

// FindByID retrieves a poll by ID
func (r *postgresPollRepository) FindByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	query := `
		SELECT id, question, description, poll_type, owner_user_id,
		       thread_id, player_id, is_anonymous, is_active, expires_at,
		       total_votes, created_at, updated_at
		FROM polls
		WHERE id = $1
	`

	var poll models.Poll
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &poll, query, pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
		}
		return nil, fmt.Errorf("failed to find poll: %w", err)
	}

	return &poll, nil
}

// FindOptions retrieves a poll's options ordered by display_order
func (r *postgresPollRepository) FindOptions(ctx context.Context, pollID uuid.UUID) ([]*models.PollOption, error) {
	query := `
		SELECT id, poll_id, text, vote_count, display_order, created_at
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY display_order ASC
	`

	var options []*models.PollOption
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &options, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to find poll options: %w", err)
	}
	return options, nil
}

// FindOption retrieves a single option by ID
func (r *postgresPollRepository) FindOption(ctx context.Context, optionID uuid.UUID) (*models.PollOption, error) {
	query := `
		SELECT id, poll_id, text, vote_count, display_order, created_at
		FROM poll_options
		WHERE id = $1
	`

	var option models.PollOption
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &option, query, optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOptionNotFound, optionID)
		}
		return nil, fmt.Errorf("failed to find poll option: %w", err)
	}

	return &option, nil
}

// List retrieves polls matching the filter, newest first. The query is built
// with squirrel because the filter combinations are open-ended.
func (r *postgresPollRepository) List(ctx context.Context, filter ListFilter) ([]*models.Poll, error) {
	builder := sq.Select(
		"id", "question", "description", "poll_type", "owner_user_id",
		"thread_id", "player_id", "is_anonymous", "is_active", "expires_at",
		"total_votes", "created_at", "updated_at",
	).
		From("polls").
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ThreadID != nil {
		builder = builder.Where(sq.Eq{"thread_id": *filter.ThreadID})
	}
	if filter.PlayerID != nil {
		builder = builder.Where(sq.Eq{"player_id": *filter.PlayerID})
	}
	if filter.OwnerUserID != nil {
		builder = builder.Where(sq.Eq{"owner_user_id": *filter.OwnerUserID})
	}
	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build poll list query: %w", err)
	}

	var polls []*models.Poll
	err = sqlx.SelectContext(ctx, r.client.Executor(ctx), &polls, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	return polls, nil
}

// InsertVote appends a vote row. The UNIQUE (poll_id, voter_key) constraint
// closes the concurrent double-submission race; a conflicting insert affects
// zero rows and is reported as created=false.
func (r *postgresPollRepository) InsertVote(ctx context.Context, vote *models.PollVote) (bool, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO poll_votes (
			id, poll_id, option_id, owner_user_id, voter_key,
			ip_address, user_agent, is_anonymous, created_at
		) VALUES (
			:id, :poll_id, :option_id, :owner_user_id, :voter_key,
			:ip_address, :user_agent, :is_anonymous, :created_at
		)
		ON CONFLICT (poll_id, voter_key) DO NOTHING
	`

	result, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, vote)
	if err != nil {
		return false, fmt.Errorf("failed to insert poll vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// HasVoted checks the vote ledger for the given identity key
func (r *postgresPollRepository) HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM poll_votes WHERE poll_id = $1 AND voter_key = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &exists, query, pollID, voterKey)
	if err != nil {
		return false, fmt.Errorf("failed to check poll vote: %w", err)
	}
	return exists, nil
}

// IncrementCounters bumps the option's vote_count and the poll's total_votes.
// Both updates are atomic in-database increments so concurrent voters never
// lose an update; the caller wraps this with InsertVote in one transaction.
func (r *postgresPollRepository) IncrementCounters(ctx context.Context, pollID, optionID uuid.UUID, delta int) error {
	optionQuery := `UPDATE poll_options SET vote_count = vote_count + $2 WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, optionQuery, optionID, delta)
	if err != nil {
		return fmt.Errorf("failed to increment option vote count: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOptionNotFound, optionID)
	}

	pollQuery := `UPDATE polls SET total_votes = total_votes + $2, updated_at = NOW() WHERE id = $1`

	result, err = r.client.Executor(ctx).ExecContext(ctx, pollQuery, pollID, delta)
	if err != nil {
		return fmt.Errorf("failed to increment poll total votes: %w", err)
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}

	return nil
}

// Close marks a poll inactive. Closing an already-closed poll affects the
// row again with the same value, which keeps the operation idempotent.
func (r *postgresPollRepository) Close(ctx context.Context, pollID uuid.UUID) error {
	query := `UPDATE polls SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, pollID)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}
	return nil
}

// WithTransaction executes fn within a database transaction
func (r *postgresPollRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}
