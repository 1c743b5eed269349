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
	"github.com/pitchscout/pitchscout/votes/models"
)

// ErrVoteNotFound is returned when no vote matches the lookup.
var ErrVoteNotFound = errors.New("vote not found")

// Vote ledger tables. One table per target kind; both share the same shape
// and the same UNIQUE (target_id, owner_user_id) constraint.
const (
	ReplyVotesTable         = "reply_votes"
	PlayerCommentVotesTable = "player_comment_votes"
)

// postgresVoteRepository implements VoteRepository using raw SQL queries,
// parameterized by the ledger table it operates on.
type postgresVoteRepository struct {
	client *postgres.Client
	table  string
}

// NewPostgresVoteRepository creates a PostgreSQL vote repository bound to the
// given ledger table (ReplyVotesTable or PlayerCommentVotesTable).
func NewPostgresVoteRepository(client *postgres.Client, table string) VoteRepository {
	return &postgresVoteRepository{client: client, table: table}
}

// FindByUserAndTarget retrieves a user's vote on a specific target
func (r *postgresVoteRepository) FindByUserAndTarget(ctx context.Context, userID, targetID uuid.UUID) (*models.TargetVote, error) {
	query := fmt.Sprintf(`
		SELECT id, target_id, owner_user_id, vote_type_id, created_at
		FROM %s
		WHERE target_id = $1 AND owner_user_id = $2
	`, r.table)

	var vote models.TargetVote
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &vote, query, targetID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: target %s user %s", ErrVoteNotFound, targetID, userID)
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// Upsert inserts a new vote or updates an existing vote's type.
// The UNIQUE (target_id, owner_user_id) constraint guarantees at most one
// row per pair; an insert that loses the race falls through to the update
// path instead of erroring.
func (r *postgresVoteRepository) Upsert(ctx context.Context, vote *models.TargetVote) (bool, int, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	existing, err := r.FindByUserAndTarget(ctx, vote.OwnerUserID, vote.TargetID)
	if err != nil {
		if !errors.Is(err, ErrVoteNotFound) {
			return false, 0, fmt.Errorf("failed to check existing vote: %w", err)
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (id, target_id, owner_user_id, vote_type_id, created_at)
			VALUES (:id, :target_id, :owner_user_id, :vote_type_id, :created_at)
			ON CONFLICT (target_id, owner_user_id) DO NOTHING
		`, r.table)

		result, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, vote)
		if err != nil {
			return false, 0, fmt.Errorf("failed to insert vote: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return false, 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			// Lost an insert race; fall through to the update path.
			existing, err = r.FindByUserAndTarget(ctx, vote.OwnerUserID, vote.TargetID)
			if err != nil {
				return false, 0, fmt.Errorf("failed to reload vote after conflict: %w", err)
			}
		} else {
			return true, 0, nil
		}
	}

	previousVoteType := existing.VoteTypeID

	query := fmt.Sprintf(`
		UPDATE %s
		SET vote_type_id = $3
		WHERE target_id = $1 AND owner_user_id = $2
	`, r.table)

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, vote.TargetID, vote.OwnerUserID, vote.VoteTypeID)
	if err != nil {
		return false, previousVoteType, fmt.Errorf("failed to update vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, previousVoteType, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, previousVoteType, fmt.Errorf("%w: vote disappeared during update", ErrVoteNotFound)
	}

	return false, previousVoteType, nil
}

// Delete removes a vote (toggle off)
func (r *postgresVoteRepository) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, int, error) {
	existing, err := r.FindByUserAndTarget(ctx, userID, targetID)
	if err != nil {
		if errors.Is(err, ErrVoteNotFound) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("failed to find vote: %w", err)
	}

	previousVoteType := existing.VoteTypeID

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE target_id = $1 AND owner_user_id = $2
	`, r.table)

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, targetID, userID)
	if err != nil {
		return false, previousVoteType, fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, previousVoteType, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, previousVoteType, nil
	}

	return true, previousVoteType, nil
}

// postgresReportRepository implements ReportRepository using raw SQL queries
type postgresReportRepository struct {
	client *postgres.Client
}

// NewPostgresReportRepository creates a PostgreSQL repository for moderation reports
func NewPostgresReportRepository(client *postgres.Client) ReportRepository {
	return &postgresReportRepository{client: client}
}

// CreateReport inserts a moderation report
func (r *postgresReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO moderation_reports (id, target_id, target_kind, reporter_user_id, reason, created_at)
		VALUES (:id, :target_id, :target_kind, :reporter_user_id, :reason, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, report)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}
