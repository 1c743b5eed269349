// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/votes/models"
)

// VoteRepository defines the vote-ledger operations for one votable target
// kind. The same implementation serves reply votes and player comment votes,
// parameterized by table name.
type VoteRepository interface {
	// FindByUserAndTarget retrieves a user's vote on a target, or ErrVoteNotFound
	FindByUserAndTarget(ctx context.Context, userID, targetID uuid.UUID) (*models.TargetVote, error)

	// Upsert inserts a new vote or updates an existing vote's type.
	// Returns (created, previousVoteType, err); previousVoteType is 0 when
	// no prior vote existed.
	Upsert(ctx context.Context, vote *models.TargetVote) (bool, int, error)

	// Delete removes a vote (toggle off).
	// Returns (deleted, previousVoteType, err); deleted=false with a nil
	// error means no vote existed.
	Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, int, error)
}

// ReportRepository records moderation flags against votable targets.
type ReportRepository interface {
	// CreateReport inserts a moderation report
	CreateReport(ctx context.Context, report *models.Report) error
}
