// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/polls/models"
)

// ListFilter narrows the poll listing. Zero values mean "no filter".
type ListFilter struct {
	ThreadID    *uuid.UUID
	PlayerID    *uuid.UUID
	OwnerUserID *uuid.UUID
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// PollRepository defines the database operations for polls, options and the
// poll vote ledger. The (poll_id, voter_key) uniqueness constraint on the
// vote table is the authoritative dedup guard; InsertVote surfaces it as a
// created=false result rather than an error.
type PollRepository interface {
	// CreatePoll inserts a poll together with its options in one transaction
	CreatePoll(ctx context.Context, poll *models.Poll, options []*models.PollOption) error

	// FindByID retrieves a poll by ID, or ErrPollNotFound
	FindByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error)

	// FindOptions retrieves a poll's options ordered by display_order
	FindOptions(ctx context.Context, pollID uuid.UUID) ([]*models.PollOption, error)

	// FindOption retrieves a single option, or ErrOptionNotFound
	FindOption(ctx context.Context, optionID uuid.UUID) (*models.PollOption, error)

	// List retrieves polls matching the filter, newest first
	List(ctx context.Context, filter ListFilter) ([]*models.Poll, error)

	// InsertVote appends a vote row. Returns created=false when the
	// (poll_id, voter_key) pair already exists.
	InsertVote(ctx context.Context, vote *models.PollVote) (created bool, err error)

	// HasVoted checks the vote ledger for the given identity key
	HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error)

	// IncrementCounters bumps the option's vote_count and the poll's
	// total_votes by delta in two statements within the caller's transaction
	IncrementCounters(ctx context.Context, pollID, optionID uuid.UUID, delta int) error

	// Close marks a poll inactive. Idempotent.
	Close(ctx context.Context, pollID uuid.UUID) error

	// WithTransaction executes fn within a database transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
