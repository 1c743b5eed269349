// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pitchscout/pitchscout/votes/models"
	voteRepository "github.com/pitchscout/pitchscout/votes/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository for testing
type MockVoteRepository struct {
	mock.Mock
}

// Ensure MockVoteRepository implements VoteRepository
var _ voteRepository.VoteRepository = (*MockVoteRepository)(nil)

// FindByUserAndTarget mocks the FindByUserAndTarget method
func (m *MockVoteRepository) FindByUserAndTarget(ctx context.Context, userID, targetID uuid.UUID) (*models.TargetVote, error) {
	args := m.Called(ctx, userID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TargetVote), args.Error(1)
}

// Upsert mocks the Upsert method
func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.TargetVote) (bool, int, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// Delete mocks the Delete method
func (m *MockVoteRepository) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, targetID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// MockVotableRepository is a mock implementation of VotableRepository for testing
type MockVotableRepository struct {
	mock.Mock
}

// Ensure MockVotableRepository implements VotableRepository
var _ VotableRepository = (*MockVotableRepository)(nil)

// GetVoteCounters mocks the GetVoteCounters method
func (m *MockVotableRepository) GetVoteCounters(ctx context.Context, targetID uuid.UUID) (int64, int64, bool, error) {
	args := m.Called(ctx, targetID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

// ApplyVoteDelta mocks the ApplyVoteDelta method
func (m *MockVotableRepository) ApplyVoteDelta(ctx context.Context, targetID uuid.UUID, upDelta, downDelta int) error {
	args := m.Called(ctx, targetID, upDelta, downDelta)
	return args.Error(0)
}

// SetFeatured mocks the SetFeatured method
func (m *MockVotableRepository) SetFeatured(ctx context.Context, targetID uuid.UUID, featured bool) error {
	args := m.Called(ctx, targetID, featured)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method
func (m *MockVotableRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

// Ensure MockReportRepository implements ReportRepository
var _ voteRepository.ReportRepository = (*MockReportRepository)(nil)

// CreateReport mocks the CreateReport method
func (m *MockReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
