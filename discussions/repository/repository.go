// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/discussions/models"
)

// ThreadRepository is the lookup surface for discussion threads. The voting
// core uses it only to validate poll associations.
type ThreadRepository interface {
	// FindByID retrieves a thread by ID, or ErrThreadNotFound.
	FindByID(ctx context.Context, threadID uuid.UUID) (*models.Thread, error)

	// Exists reports whether a thread with the given ID exists.
	Exists(ctx context.Context, threadID uuid.UUID) (bool, error)
}

// ReplyRepository defines the reply-specific database operations the
// engagement subsystem needs: the reply tree plus the votable-target surface
// (counter deltas, feature flag, soft delete) consumed by the vote service.
type ReplyRepository interface {
	// Create inserts a new reply
	Create(ctx context.Context, reply *models.Reply) error

	// FindByID retrieves a reply by its ID, or ErrReplyNotFound
	FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error)

	// FindByThreadID retrieves top-level replies for a thread, newest first
	FindByThreadID(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*models.Reply, error)

	// FindReplies retrieves nested replies of a parent reply, oldest first
	FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Reply, error)

	// GetVoteCounters returns the current denormalized counters for a reply.
	// deleted is true when the reply has been soft-deleted.
	GetVoteCounters(ctx context.Context, replyID uuid.UUID) (up, down int64, deleted bool, err error)

	// ApplyVoteDelta atomically adjusts the denormalized vote counters.
	// Both counters move in one statement so call sites cannot update one
	// without the other.
	ApplyVoteDelta(ctx context.Context, replyID uuid.UUID, upDelta, downDelta int) error

	// SetFeatured toggles the featured flag
	SetFeatured(ctx context.Context, replyID uuid.UUID, featured bool) error

	// Delete soft deletes a reply
	Delete(ctx context.Context, replyID uuid.UUID) error

	// WithTransaction executes fn within a database transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
