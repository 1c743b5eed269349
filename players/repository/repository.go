// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/players/models"
)

// PlayerRepository is the lookup surface for player profiles.
type PlayerRepository interface {
	// FindByID retrieves a player by ID, or ErrPlayerNotFound.
	FindByID(ctx context.Context, playerID uuid.UUID) (*models.Player, error)

	// Exists reports whether a player with the given ID exists.
	Exists(ctx context.Context, playerID uuid.UUID) (bool, error)
}

// CommentRepository defines the database operations for player comments. The
// votable-target methods mirror the reply repository so the vote service can
// drive either one.
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID, or ErrCommentNotFound
	FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// FindByPlayerID retrieves top-level comments for a player, newest first
	FindByPlayerID(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// FindReplies retrieves nested comments of a parent comment, oldest first
	FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// GetVoteCounters returns the current denormalized counters for a comment.
	// deleted is true when the comment has been soft-deleted.
	GetVoteCounters(ctx context.Context, commentID uuid.UUID) (up, down int64, deleted bool, err error)

	// ApplyVoteDelta atomically adjusts the denormalized vote counters
	ApplyVoteDelta(ctx context.Context, commentID uuid.UUID, upDelta, downDelta int) error

	// SetFeatured toggles the featured flag
	SetFeatured(ctx context.Context, commentID uuid.UUID, featured bool) error

	// Delete soft deletes a comment
	Delete(ctx context.Context, commentID uuid.UUID) error

	// WithTransaction executes fn within a database transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
