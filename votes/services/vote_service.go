// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/identity"
	"github.com/pitchscout/pitchscout/internal/types"
	voteErrors "github.com/pitchscout/pitchscout/votes/errors"
	"github.com/pitchscout/pitchscout/votes/models"
	voteRepository "github.com/pitchscout/pitchscout/votes/repository"
)

// VotableRepository is the counter surface a vote target must expose. Both
// the discussions reply repository and the players comment repository
// satisfy it, so one vote service drives both target kinds.
type VotableRepository interface {
	// GetVoteCounters returns (upvotes, downvotes, deleted) for a target,
	// or the repository's not-found error.
	GetVoteCounters(ctx context.Context, targetID uuid.UUID) (up, down int64, deleted bool, err error)

	// ApplyVoteDelta atomically adjusts both denormalized counters
	ApplyVoteDelta(ctx context.Context, targetID uuid.UUID, upDelta, downDelta int) error

	// SetFeatured toggles the featured flag
	SetFeatured(ctx context.Context, targetID uuid.UUID, featured bool) error

	// WithTransaction executes fn within a database transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// VoteService defines the interface for vote operations on a votable target
// kind (discussion replies or player comments).
type VoteService interface {
	// Vote applies one step of the NoVote -> Upvoted <-> Downvoted state
	// machine for (target, user) and returns the outcome with fresh counters.
	// Registered users only.
	Vote(ctx context.Context, targetID uuid.UUID, ident identity.Identity, voteType int) (*models.VoteResult, error)

	// NetScore returns upvotes - downvotes, derived from the counters
	NetScore(ctx context.Context, targetID uuid.UUID) (int64, error)

	// Report records a moderation flag; vote counters are untouched
	Report(ctx context.Context, targetID uuid.UUID, ident identity.Identity, reason string) (*models.Report, error)

	// Feature marks a target as featured. Moderators only.
	Feature(ctx context.Context, targetID uuid.UUID, requester types.UserContext) error

	// Unfeature clears the featured flag. Moderators only.
	Unfeature(ctx context.Context, targetID uuid.UUID, requester types.UserContext) error
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo   voteRepository.VoteRepository
	targetRepo VotableRepository
	reportRepo voteRepository.ReportRepository
	targetKind string
}

// NewVoteService creates a vote service for one target kind. The vote
// repository must be bound to the matching ledger table.
func NewVoteService(voteRepo voteRepository.VoteRepository, targetRepo VotableRepository, reportRepo voteRepository.ReportRepository, targetKind string) VoteService {
	return &voteService{
		voteRepo:   voteRepo,
		targetRepo: targetRepo,
		reportRepo: reportRepo,
		targetKind: targetKind,
	}
}

// requireRegistered rejects anonymous identities. Reply and comment voting
// is registered-users-only, unlike poll voting.
func requireRegistered(ident identity.Identity) (uuid.UUID, error) {
	registered, ok := ident.(identity.Registered)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: voting on replies and comments requires a registered account", voteErrors.ErrAuthenticationRequired)
	}
	return registered.UserID, nil
}

// Vote applies one step of the vote state machine:
//   - no prior vote: insert the vote, bump the matching counter (Cast)
//   - same type exists: delete it, drop the counter (Retracted)
//   - opposite type exists: switch it, move one count across (Toggled)
//
// The vote row and the counter deltas commit in one transaction so the
// denormalized counters can never drift from the ledger.
func (s *voteService) Vote(ctx context.Context, targetID uuid.UUID, ident identity.Identity, voteType int) (*models.VoteResult, error) {
	if !models.IsValidVoteType(voteType) {
		return nil, fmt.Errorf("%w: %d (must be 1=Up or 2=Down)", voteErrors.ErrInvalidVoteType, voteType)
	}

	userID, err := requireRegistered(ident)
	if err != nil {
		return nil, err
	}

	var result models.VoteResult

	err = s.targetRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		_, _, deleted, err := s.targetRepo.GetVoteCounters(txCtx, targetID)
		if err != nil {
			return fmt.Errorf("%w: %s", voteErrors.ErrTargetNotFound, targetID)
		}
		if deleted {
			return fmt.Errorf("%w: %s", voteErrors.ErrTargetDeleted, targetID)
		}

		existing, err := s.voteRepo.FindByUserAndTarget(txCtx, userID, targetID)
		if err != nil && !errors.Is(err, voteRepository.ErrVoteNotFound) {
			return fmt.Errorf("failed to find existing vote: %w", err)
		}

		upDelta, downDelta := 0, 0

		switch {
		case existing == nil:
			newVote := &models.TargetVote{
				ID:          uuid.Must(uuid.NewV4()),
				TargetID:    targetID,
				OwnerUserID: userID,
				VoteTypeID:  voteType,
			}
			created, _, err := s.voteRepo.Upsert(txCtx, newVote)
			if err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
			if !created {
				return fmt.Errorf("expected vote to be created but it was updated")
			}
			if voteType == models.VoteTypeUp {
				upDelta = 1
			} else {
				downDelta = 1
			}
			result.Outcome = models.OutcomeCast

		case existing.VoteTypeID == voteType:
			deleted, previousType, err := s.voteRepo.Delete(txCtx, targetID, userID)
			if err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			if !deleted {
				return fmt.Errorf("expected vote to be deleted but it was not found")
			}
			if previousType == models.VoteTypeUp {
				upDelta = -1
			} else {
				downDelta = -1
			}
			result.Outcome = models.OutcomeRetracted

		default:
			switched := *existing
			switched.VoteTypeID = voteType
			created, previousType, err := s.voteRepo.Upsert(txCtx, &switched)
			if err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			if created {
				return fmt.Errorf("expected vote to be updated but it was created")
			}
			if previousType == models.VoteTypeUp {
				upDelta, downDelta = -1, 1
			} else {
				upDelta, downDelta = 1, -1
			}
			result.Outcome = models.OutcomeToggled
		}

		if err := s.targetRepo.ApplyVoteDelta(txCtx, targetID, upDelta, downDelta); err != nil {
			return fmt.Errorf("failed to apply vote delta: %w", err)
		}

		up, down, _, err := s.targetRepo.GetVoteCounters(txCtx, targetID)
		if err != nil {
			return fmt.Errorf("failed to reload counters: %w", err)
		}
		result.Upvotes = up
		result.Downvotes = down
		result.NetScore = up - down
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// NetScore returns upvotes - downvotes for a target
func (s *voteService) NetScore(ctx context.Context, targetID uuid.UUID) (int64, error) {
	up, down, _, err := s.targetRepo.GetVoteCounters(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", voteErrors.ErrTargetNotFound, targetID)
	}
	return up - down, nil
}

// Report records a moderation flag against a target. Registered users only;
// the reason must not be blank.
func (s *voteService) Report(ctx context.Context, targetID uuid.UUID, ident identity.Identity, reason string) (*models.Report, error) {
	userID, err := requireRegistered(ident)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: report reason cannot be blank", voteErrors.ErrInvalidVoteData)
	}

	_, _, _, err = s.targetRepo.GetVoteCounters(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", voteErrors.ErrTargetNotFound, targetID)
	}

	report := &models.Report{
		ID:             uuid.Must(uuid.NewV4()),
		TargetID:       targetID,
		TargetKind:     s.targetKind,
		ReporterUserID: userID,
		Reason:         reason,
	}

	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to record report: %w", err)
	}

	return report, nil
}

// Feature marks a target as featured. Moderation capability required.
func (s *voteService) Feature(ctx context.Context, targetID uuid.UUID, requester types.UserContext) error {
	return s.setFeatured(ctx, targetID, requester, true)
}

// Unfeature clears the featured flag. Moderation capability required.
func (s *voteService) Unfeature(ctx context.Context, targetID uuid.UUID, requester types.UserContext) error {
	return s.setFeatured(ctx, targetID, requester, false)
}

func (s *voteService) setFeatured(ctx context.Context, targetID uuid.UUID, requester types.UserContext, featured bool) error {
	if !requester.CanModerate() {
		return fmt.Errorf("%w: featuring requires a moderator role", voteErrors.ErrNotAuthorized)
	}

	_, _, deleted, err := s.targetRepo.GetVoteCounters(ctx, targetID)
	if err != nil {
		return fmt.Errorf("%w: %s", voteErrors.ErrTargetNotFound, targetID)
	}
	if deleted {
		return fmt.Errorf("%w: %s", voteErrors.ErrTargetDeleted, targetID)
	}

	return s.targetRepo.SetFeatured(ctx, targetID, featured)
}
