// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/identity"
	"github.com/pitchscout/pitchscout/internal/types"
	pollErrors "github.com/pitchscout/pitchscout/polls/errors"
	"github.com/pitchscout/pitchscout/polls/models"
	"github.com/pitchscout/pitchscout/polls/repository"
)

// ThreadLookup validates optional thread associations. Satisfied by the
// discussions repository.
type ThreadLookup interface {
	Exists(ctx context.Context, threadID uuid.UUID) (bool, error)
}

// PlayerLookup validates optional player associations. Satisfied by the
// players repository.
type PlayerLookup interface {
	Exists(ctx context.Context, playerID uuid.UUID) (bool, error)
}

// VoteMarkCache is an optional positive-only cache of "identity has voted on
// poll" facts. Poll votes are append-only and never retracted, so a cached
// positive can never go stale; negatives always fall through to the ledger.
// Satisfied by cache.RedisCache.
type VoteMarkCache interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// CreatePollInput carries the validated fields for poll creation
type CreatePollInput struct {
	Question    string
	Description string
	PollType    string
	OwnerUserID uuid.UUID
	OptionTexts []string
	ThreadID    *uuid.UUID
	PlayerID    *uuid.UUID
	IsAnonymous bool
	ExpiresAt   *time.Time
}

// PollService defines the interface for poll operations
type PollService interface {
	// CreatePoll validates and persists a poll with its options atomically
	CreatePoll(ctx context.Context, input CreatePollInput) (*models.Poll, error)

	// Vote casts a vote for the given identity. At most one vote per
	// identity per poll; duplicates return ErrDuplicateVote.
	Vote(ctx context.Context, pollID, optionID uuid.UUID, ident identity.Identity) (*models.PollVote, error)

	// HasVoted checks the vote ledger for the given identity
	HasVoted(ctx context.Context, pollID uuid.UUID, ident identity.Identity) (bool, error)

	// GetPoll retrieves a poll with its options
	GetPoll(ctx context.Context, pollID uuid.UUID) (*models.Poll, []*models.PollOption, error)

	// GetResults computes counts and percentages fresh from current counters
	GetResults(ctx context.Context, pollID uuid.UUID) (*models.PollResults, error)

	// ClosePoll deactivates a poll. Author or moderator only; idempotent.
	ClosePoll(ctx context.Context, pollID uuid.UUID, requester types.UserContext) error

	// ListPolls retrieves polls matching the filter, newest first
	ListPolls(ctx context.Context, filter repository.ListFilter) ([]*models.Poll, error)
}

// pollService implements the PollService interface
type pollService struct {
	pollRepo     repository.PollRepository
	threadLookup ThreadLookup
	playerLookup PlayerLookup
	voteMarks    VoteMarkCache // nil disables caching
}

// NewPollService creates a new instance of the poll service
func NewPollService(pollRepo repository.PollRepository, threadLookup ThreadLookup, playerLookup PlayerLookup) PollService {
	return &pollService{
		pollRepo:     pollRepo,
		threadLookup: threadLookup,
		playerLookup: playerLookup,
	}
}

// NewPollServiceWithCache creates a poll service that additionally records
// positive has-voted marks in the given cache.
func NewPollServiceWithCache(pollRepo repository.PollRepository, threadLookup ThreadLookup, playerLookup PlayerLookup, voteMarks VoteMarkCache) PollService {
	return &pollService{
		pollRepo:     pollRepo,
		threadLookup: threadLookup,
		playerLookup: playerLookup,
		voteMarks:    voteMarks,
	}
}

const voteMarkTTL = 24 * time.Hour

func voteMarkKey(pollID uuid.UUID, voterKey string) string {
	return "poll:voted:" + pollID.String() + ":" + voterKey
}

// CreatePoll validates and persists a poll with its options atomically
func (s *pollService) CreatePoll(ctx context.Context, input CreatePollInput) (*models.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", pollErrors.ErrInvalidPollData)
	}
	if !models.IsValidPollType(input.PollType) {
		return nil, fmt.Errorf("%w: unknown poll type %q", pollErrors.ErrInvalidPollData, input.PollType)
	}

	optionTexts := make([]string, 0, len(input.OptionTexts))
	for _, text := range input.OptionTexts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: option text cannot be blank", pollErrors.ErrInvalidPollData)
		}
		optionTexts = append(optionTexts, trimmed)
	}
	if len(optionTexts) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", pollErrors.ErrInvalidPollData)
	}
	if input.PollType == models.PollTypeYesNo && len(optionTexts) != 2 {
		return nil, fmt.Errorf("%w: yes/no polls take exactly two options", pollErrors.ErrInvalidPollData)
	}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", pollErrors.ErrInvalidPollData)
	}

	if input.ThreadID != nil {
		exists, err := s.threadLookup.Exists(ctx, *input.ThreadID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate thread association: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", pollErrors.ErrThreadNotFound, *input.ThreadID)
		}
	}
	if input.PlayerID != nil {
		exists, err := s.playerLookup.Exists(ctx, *input.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate player association: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", pollErrors.ErrPlayerNotFound, *input.PlayerID)
		}
	}

	poll := &models.Poll{
		ID:          uuid.Must(uuid.NewV4()),
		Question:    question,
		Description: strings.TrimSpace(input.Description),
		PollType:    input.PollType,
		OwnerUserID: input.OwnerUserID,
		ThreadID:    input.ThreadID,
		PlayerID:    input.PlayerID,
		IsAnonymous: input.IsAnonymous,
		IsActive:    true,
		ExpiresAt:   input.ExpiresAt,
	}

	options := make([]*models.PollOption, 0, len(optionTexts))
	for i, text := range optionTexts {
		options = append(options, &models.PollOption{
			ID:           uuid.Must(uuid.NewV4()),
			PollID:       poll.ID,
			Text:         text,
			DisplayOrder: i,
		})
	}

	if err := s.pollRepo.CreatePoll(ctx, poll, options); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return poll, nil
}

// Vote casts a vote for the given identity.
// The uniqueness constraint on (poll_id, voter_key) is the authoritative
// dedup guard; the HasVoted pre-check only short-circuits the common case
// and cannot be trusted under concurrent requests.
func (s *pollService) Vote(ctx context.Context, pollID, optionID uuid.UUID, ident identity.Identity) (*models.PollVote, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if !poll.IsOpenAt(time.Now()) {
		return nil, fmt.Errorf("%w: %s", pollErrors.ErrPollClosed, pollID)
	}

	option, err := s.pollRepo.FindOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if option.PollID != pollID {
		return nil, fmt.Errorf("%w: option %s does not belong to poll %s", pollErrors.ErrOptionNotFound, optionID, pollID)
	}

	voted, err := s.alreadyVoted(ctx, pollID, ident.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return nil, fmt.Errorf("%w: %s", pollErrors.ErrDuplicateVote, ident.Key())
	}

	vote := &models.PollVote{
		ID:       uuid.Must(uuid.NewV4()),
		PollID:   pollID,
		OptionID: optionID,
		VoterKey: ident.Key(),
	}
	switch v := ident.(type) {
	case identity.Registered:
		userID := v.UserID
		vote.OwnerUserID = &userID
		vote.IsAnonymous = poll.IsAnonymous
	case identity.Anonymous:
		vote.IPAddress = v.IPAddress
		vote.UserAgent = v.UserAgent
		vote.IsAnonymous = true
	}

	err = s.pollRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.pollRepo.InsertVote(txCtx, vote)
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		if !created {
			// Lost the race to a concurrent request by the same identity.
			return fmt.Errorf("%w: %s", pollErrors.ErrDuplicateVote, ident.Key())
		}

		if err := s.pollRepo.IncrementCounters(txCtx, pollID, optionID, 1); err != nil {
			return fmt.Errorf("failed to increment poll counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.markVoted(ctx, pollID, ident.Key())

	return vote, nil
}

// HasVoted checks the vote ledger for the given identity
func (s *pollService) HasVoted(ctx context.Context, pollID uuid.UUID, ident identity.Identity) (bool, error) {
	if _, err := s.pollRepo.FindByID(ctx, pollID); err != nil {
		return false, err
	}
	return s.alreadyVoted(ctx, pollID, ident.Key())
}

// alreadyVoted consults the positive-only mark cache before the ledger. A
// cache miss or cache failure always falls through to the database, which
// remains the source of truth.
func (s *pollService) alreadyVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error) {
	if s.voteMarks != nil {
		if _, err := s.voteMarks.Get(ctx, voteMarkKey(pollID, voterKey)); err == nil {
			return true, nil
		}
	}

	voted, err := s.pollRepo.HasVoted(ctx, pollID, voterKey)
	if err != nil {
		return false, err
	}
	if voted {
		s.markVoted(ctx, pollID, voterKey)
	}
	return voted, nil
}

// markVoted records a positive has-voted mark. Best effort: cache failures
// are ignored.
func (s *pollService) markVoted(ctx context.Context, pollID uuid.UUID, voterKey string) {
	if s.voteMarks == nil {
		return
	}
	_, _ = s.voteMarks.SetNX(ctx, voteMarkKey(pollID, voterKey), "1", voteMarkTTL)
}

// GetPoll retrieves a poll with its options
func (s *pollService) GetPoll(ctx context.Context, pollID uuid.UUID) (*models.Poll, []*models.PollOption, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}
	options, err := s.pollRepo.FindOptions(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}
	return poll, options, nil
}

// GetResults computes counts and percentages fresh from current counters
func (s *pollService) GetResults(ctx context.Context, pollID uuid.UUID) (*models.PollResults, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	options, err := s.pollRepo.FindOptions(ctx, pollID)
	if err != nil {
		return nil, err
	}

	results := &models.PollResults{
		PollID:     poll.ID,
		Question:   poll.Question,
		TotalVotes: poll.TotalVotes,
		IsOpen:     poll.IsOpenAt(time.Now()),
		Options:    make([]models.OptionResult, 0, len(options)),
	}

	for _, option := range options {
		percentage := 0.0
		if poll.TotalVotes > 0 {
			percentage = float64(option.VoteCount) / float64(poll.TotalVotes) * 100
		}
		results.Options = append(results.Options, models.OptionResult{
			OptionID:   option.ID,
			Text:       option.Text,
			VoteCount:  option.VoteCount,
			Percentage: percentage,
		})
	}

	return results, nil
}

// ClosePoll deactivates a poll. Only the author or a moderator-capable role
// may close it; closing an already-closed poll is a no-op.
func (s *pollService) ClosePoll(ctx context.Context, pollID uuid.UUID, requester types.UserContext) error {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.OwnerUserID != requester.UserID && !requester.CanModerate() {
		return fmt.Errorf("%w: only the author or a moderator can close a poll", pollErrors.ErrNotAuthorized)
	}

	if !poll.IsActive {
		return nil
	}

	return s.pollRepo.Close(ctx, pollID)
}

// ListPolls retrieves polls matching the filter, newest first
func (s *pollService) ListPolls(ctx context.Context, filter repository.ListFilter) ([]*models.Poll, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.pollRepo.List(ctx, filter)
}
