// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pitchscout/pitchscout/internal/identity"
	"github.com/pitchscout/pitchscout/internal/types"
	voteErrors "github.com/pitchscout/pitchscout/votes/errors"
	"github.com/pitchscout/pitchscout/votes/models"
	voteRepository "github.com/pitchscout/pitchscout/votes/repository"
)

func TestVoteService_Vote(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	voter := identity.Registered{UserID: userID}

	// runTx makes the WithTransaction mock execute the callback and
	// propagate its error, the way the real client does.
	runTx := func(mockTarget *MockVotableRepository) {
		mockTarget.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			fn(ctx)
		})
	}

	t.Run("Cast - new up vote", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockTarget := new(MockVotableRepository)

		service := NewVoteService(mockVoteRepo, mockTarget, new(MockReportRepository), models.TargetKindReply)

		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(0), int64(0), false, nil).Once()
		mockVoteRepo.On("FindByUserAndTarget", mock.Anything, userID, targetID).Return(nil, fmt.Errorf("%w: none", voteRepository.ErrVoteNotFound))
		mockVoteRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(vote *models.TargetVote) bool {
			return vote.TargetID == targetID && vote.OwnerUserID == userID && vote.VoteTypeID == models.VoteTypeUp
		})).Return(true, 0, nil)
		mockTarget.On("ApplyVoteDelta", mock.Anything, targetID, 1, 0).Return(nil)
		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(1), int64(0), false, nil).Once()
		runTx(mockTarget)

		result, err := service.Vote(ctx, targetID, voter, models.VoteTypeUp)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeCast, result.Outcome)
		assert.Equal(t, int64(1), result.Upvotes)
		assert.Equal(t, int64(1), result.NetScore)
		mockVoteRepo.AssertExpectations(t)
		mockTarget.AssertExpectations(t)
	})

	t.Run("Retracted - same type toggles off", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockTarget := new(MockVotableRepository)

		service := NewVoteService(mockVoteRepo, mockTarget, new(MockReportRepository), models.TargetKindReply)

		existing := &models.TargetVote{
			ID:          uuid.Must(uuid.NewV4()),
			TargetID:    targetID,
			OwnerUserID: userID,
			VoteTypeID:  models.VoteTypeUp,
		}

		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(1), int64(0), false, nil).Once()
		mockVoteRepo.On("FindByUserAndTarget", mock.Anything, userID, targetID).Return(existing, nil)
		mockVoteRepo.On("Delete", mock.Anything, targetID, userID).Return(true, models.VoteTypeUp, nil)
		mockTarget.On("ApplyVoteDelta", mock.Anything, targetID, -1, 0).Return(nil)
		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(0), int64(0), false, nil).Once()
		runTx(mockTarget)

		result, err := service.Vote(ctx, targetID, voter, models.VoteTypeUp)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeRetracted, result.Outcome)
		assert.Equal(t, int64(0), result.Upvotes)
		mockVoteRepo.AssertExpectations(t)
	})

	t.Run("Toggled - opposite type moves one count across", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockTarget := new(MockVotableRepository)

		service := NewVoteService(mockVoteRepo, mockTarget, new(MockReportRepository), models.TargetKindReply)

		existing := &models.TargetVote{
			ID:          uuid.Must(uuid.NewV4()),
			TargetID:    targetID,
			OwnerUserID: userID,
			VoteTypeID:  models.VoteTypeUp,
		}

		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(1), int64(0), false, nil).Once()
		mockVoteRepo.On("FindByUserAndTarget", mock.Anything, userID, targetID).Return(existing, nil)
		mockVoteRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(vote *models.TargetVote) bool {
			return vote.VoteTypeID == models.VoteTypeDown
		})).Return(false, models.VoteTypeUp, nil)
		mockTarget.On("ApplyVoteDelta", mock.Anything, targetID, -1, 1).Return(nil)
		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(0), int64(1), false, nil).Once()
		runTx(mockTarget)

		result, err := service.Vote(ctx, targetID, voter, models.VoteTypeDown)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeToggled, result.Outcome)
		assert.Equal(t, int64(0), result.Upvotes)
		assert.Equal(t, int64(1), result.Downvotes)
		assert.Equal(t, int64(-1), result.NetScore)
		// The original vote object must not be mutated by the switch.
		assert.Equal(t, models.VoteTypeUp, existing.VoteTypeID)
	})

	t.Run("Anonymous identities are rejected", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockTarget := new(MockVotableRepository)

		service := NewVoteService(mockVoteRepo, mockTarget, new(MockReportRepository), models.TargetKindReply)

		anonymous := identity.Anonymous{IPAddress: "203.0.113.1"}
		_, err := service.Vote(ctx, targetID, anonymous, models.VoteTypeUp)

		assert.ErrorIs(t, err, voteErrors.ErrAuthenticationRequired)
		mockVoteRepo.AssertNotCalled(t, "Upsert")
		mockTarget.AssertNotCalled(t, "ApplyVoteDelta")
	})

	t.Run("Invalid vote type rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository), new(MockVotableRepository), new(MockReportRepository), models.TargetKindReply)

		_, err := service.Vote(ctx, targetID, voter, 3)

		assert.ErrorIs(t, err, voteErrors.ErrInvalidVoteType)
	})

	t.Run("Deleted target rejected", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockTarget := new(MockVotableRepository)

		service := NewVoteService(mockVoteRepo, mockTarget, new(MockReportRepository), models.TargetKindReply)

		mockTarget.On("GetVoteCounters", mock.Anything, targetID).Return(int64(0), int64(0), true, nil)
		mockTarget.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			err := fn(ctx)
			assert.ErrorIs(t, err, voteErrors.ErrTargetDeleted)
		}).Return(fmt.Errorf("%w: %s", voteErrors.ErrTargetDeleted, targetID))

		_, err := service.Vote(ctx, targetID, voter, models.VoteTypeUp)

		assert.ErrorIs(t, err, voteErrors.ErrTargetDeleted)
		mockVoteRepo.AssertNotCalled(t, "Upsert")
	})
}

func TestVoteService_Report(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	voter := identity.Registered{UserID: userID}

	t.Run("Valid report recorded without touching counters", func(t *testing.T) {
		mockTarget := new(MockVotableRepository)
		mockReports := new(MockReportRepository)

		service := NewVoteService(new(MockVoteRepository), mockTarget, mockReports, models.TargetKindComment)

		mockTarget.On("GetVoteCounters", ctx, targetID).Return(int64(2), int64(1), false, nil)
		mockReports.On("CreateReport", ctx, mock.MatchedBy(func(report *models.Report) bool {
			return report.TargetID == targetID &&
				report.ReporterUserID == userID &&
				report.TargetKind == models.TargetKindComment &&
				report.Reason == "spam link"
		})).Return(nil)

		report, err := service.Report(ctx, targetID, voter, "  spam link  ")

		require.NoError(t, err)
		assert.Equal(t, "spam link", report.Reason)
		mockTarget.AssertNotCalled(t, "ApplyVoteDelta")
		mockReports.AssertExpectations(t)
	})

	t.Run("Blank reason rejected", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		service := NewVoteService(new(MockVoteRepository), new(MockVotableRepository), mockReports, models.TargetKindReply)

		_, err := service.Report(ctx, targetID, voter, "   ")

		assert.ErrorIs(t, err, voteErrors.ErrInvalidVoteData)
		mockReports.AssertNotCalled(t, "CreateReport")
	})

	t.Run("Anonymous reporter rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository), new(MockVotableRepository), new(MockReportRepository), models.TargetKindReply)

		_, err := service.Report(ctx, targetID, identity.Anonymous{IPAddress: "203.0.113.1"}, "abuse")

		assert.ErrorIs(t, err, voteErrors.ErrAuthenticationRequired)
	})
}

func TestVoteService_Feature(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.Must(uuid.NewV4())

	moderator := types.UserContext{UserID: uuid.Must(uuid.NewV4()), SystemRole: types.ModeratorRole}
	regular := types.UserContext{UserID: uuid.Must(uuid.NewV4()), SystemRole: types.UserRole}

	t.Run("Moderator can feature and unfeature", func(t *testing.T) {
		mockTarget := new(MockVotableRepository)
		service := NewVoteService(new(MockVoteRepository), mockTarget, new(MockReportRepository), models.TargetKindReply)

		mockTarget.On("GetVoteCounters", ctx, targetID).Return(int64(0), int64(0), false, nil)
		mockTarget.On("SetFeatured", ctx, targetID, true).Return(nil).Once()
		mockTarget.On("SetFeatured", ctx, targetID, false).Return(nil).Once()

		assert.NoError(t, service.Feature(ctx, targetID, moderator))
		assert.NoError(t, service.Unfeature(ctx, targetID, moderator))
		mockTarget.AssertExpectations(t)
	})

	t.Run("Regular user cannot feature", func(t *testing.T) {
		mockTarget := new(MockVotableRepository)
		service := NewVoteService(new(MockVoteRepository), mockTarget, new(MockReportRepository), models.TargetKindReply)

		err := service.Feature(ctx, targetID, regular)

		assert.ErrorIs(t, err, voteErrors.ErrNotAuthorized)
		mockTarget.AssertNotCalled(t, "SetFeatured")
	})
}

// fakeVoteLedger is an in-memory vote ledger plus counter store used for the
// state machine sequence tests, where per-call mock setup would drown the
// property being checked.
type fakeVoteLedger struct {
	mu        sync.Mutex
	votes     map[string]*models.TargetVote // key: targetID|userID
	upvotes   map[uuid.UUID]int64
	downvotes map[uuid.UUID]int64
	known     map[uuid.UUID]bool
}

var (
	_ voteRepository.VoteRepository = (*fakeVoteLedger)(nil)
	_ VotableRepository             = (*fakeVoteLedger)(nil)
)

func newFakeVoteLedger(targets ...uuid.UUID) *fakeVoteLedger {
	f := &fakeVoteLedger{
		votes:     make(map[string]*models.TargetVote),
		upvotes:   make(map[uuid.UUID]int64),
		downvotes: make(map[uuid.UUID]int64),
		known:     make(map[uuid.UUID]bool),
	}
	for _, target := range targets {
		f.known[target] = true
	}
	return f
}

func (f *fakeVoteLedger) key(targetID, userID uuid.UUID) string {
	return targetID.String() + "|" + userID.String()
}

func (f *fakeVoteLedger) FindByUserAndTarget(ctx context.Context, userID, targetID uuid.UUID) (*models.TargetVote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vote, ok := f.votes[f.key(targetID, userID)]
	if !ok {
		return nil, fmt.Errorf("%w: target %s user %s", voteRepository.ErrVoteNotFound, targetID, userID)
	}
	copied := *vote
	return &copied, nil
}

func (f *fakeVoteLedger) Upsert(ctx context.Context, vote *models.TargetVote) (bool, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.key(vote.TargetID, vote.OwnerUserID)
	if existing, ok := f.votes[key]; ok {
		previous := existing.VoteTypeID
		existing.VoteTypeID = vote.VoteTypeID
		return false, previous, nil
	}
	copied := *vote
	f.votes[key] = &copied
	return true, 0, nil
}

func (f *fakeVoteLedger) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.key(targetID, userID)
	existing, ok := f.votes[key]
	if !ok {
		return false, 0, nil
	}
	delete(f.votes, key)
	return true, existing.VoteTypeID, nil
}

func (f *fakeVoteLedger) GetVoteCounters(ctx context.Context, targetID uuid.UUID) (int64, int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.known[targetID] {
		return 0, 0, false, fmt.Errorf("target not found: %s", targetID)
	}
	return f.upvotes[targetID], f.downvotes[targetID], false, nil
}

func (f *fakeVoteLedger) ApplyVoteDelta(ctx context.Context, targetID uuid.UUID, upDelta, downDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.known[targetID] {
		return fmt.Errorf("target not found: %s", targetID)
	}
	f.upvotes[targetID] += int64(upDelta)
	f.downvotes[targetID] += int64(downDelta)
	return nil
}

func (f *fakeVoteLedger) SetFeatured(ctx context.Context, targetID uuid.UUID, featured bool) error {
	return nil
}

func (f *fakeVoteLedger) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestVoteService_ToggleSequence(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	voter := identity.Registered{UserID: userID}

	ledger := newFakeVoteLedger(targetID)
	service := NewVoteService(ledger, ledger, new(MockReportRepository), models.TargetKindReply)

	// Up from no vote: upvotes=1
	result, err := service.Vote(ctx, targetID, voter, models.VoteTypeUp)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCast, result.Outcome)
	assert.Equal(t, int64(1), result.Upvotes)
	assert.Equal(t, int64(0), result.Downvotes)

	// Up again: retracted, upvotes=0
	result, err = service.Vote(ctx, targetID, voter, models.VoteTypeUp)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRetracted, result.Outcome)
	assert.Equal(t, int64(0), result.Upvotes)
	assert.Equal(t, int64(0), result.Downvotes)

	// Down from no vote: downvotes=1, upvotes stays 0
	result, err = service.Vote(ctx, targetID, voter, models.VoteTypeDown)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCast, result.Outcome)
	assert.Equal(t, int64(0), result.Upvotes)
	assert.Equal(t, int64(1), result.Downvotes)
	assert.Equal(t, int64(-1), result.NetScore)

	// Up over down: toggled, one count moves across
	result, err = service.Vote(ctx, targetID, voter, models.VoteTypeUp)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeToggled, result.Outcome)
	assert.Equal(t, int64(1), result.Upvotes)
	assert.Equal(t, int64(0), result.Downvotes)
	assert.Equal(t, int64(1), result.NetScore)

	// The ledger never holds more than one row for the pair.
	vote, err := ledger.FindByUserAndTarget(ctx, userID, targetID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteTypeUp, vote.VoteTypeID)
}
