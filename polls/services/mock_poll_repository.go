// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pitchscout/pitchscout/polls/models"
	pollRepository "github.com/pitchscout/pitchscout/polls/repository"
)

// MockPollRepository is a mock implementation of PollRepository for testing
type MockPollRepository struct {
	mock.Mock
}

// Ensure MockPollRepository implements PollRepository
var _ pollRepository.PollRepository = (*MockPollRepository)(nil)

// CreatePoll mocks the CreatePoll method
func (m *MockPollRepository) CreatePoll(ctx context.Context, poll *models.Poll, options []*models.PollOption) error {
	args := m.Called(ctx, poll, options)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockPollRepository) FindByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Poll), args.Error(1)
}

// FindOptions mocks the FindOptions method
func (m *MockPollRepository) FindOptions(ctx context.Context, pollID uuid.UUID) ([]*models.PollOption, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PollOption), args.Error(1)
}

// FindOption mocks the FindOption method
func (m *MockPollRepository) FindOption(ctx context.Context, optionID uuid.UUID) (*models.PollOption, error) {
	args := m.Called(ctx, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PollOption), args.Error(1)
}

// List mocks the List method
func (m *MockPollRepository) List(ctx context.Context, filter pollRepository.ListFilter) ([]*models.Poll, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Poll), args.Error(1)
}

// InsertVote mocks the InsertVote method
func (m *MockPollRepository) InsertVote(ctx context.Context, vote *models.PollVote) (bool, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Error(1)
}

// HasVoted mocks the HasVoted method
func (m *MockPollRepository) HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error) {
	args := m.Called(ctx, pollID, voterKey)
	return args.Bool(0), args.Error(1)
}

// IncrementCounters mocks the IncrementCounters method
func (m *MockPollRepository) IncrementCounters(ctx context.Context, pollID, optionID uuid.UUID, delta int) error {
	args := m.Called(ctx, pollID, optionID, delta)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MockPollRepository) Close(ctx context.Context, pollID uuid.UUID) error {
	args := m.Called(ctx, pollID)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method
func (m *MockPollRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockThreadLookup is a mock implementation of ThreadLookup for testing
type MockThreadLookup struct {
	mock.Mock
}

// Exists mocks the Exists method
func (m *MockThreadLookup) Exists(ctx context.Context, threadID uuid.UUID) (bool, error) {
	args := m.Called(ctx, threadID)
	return args.Bool(0), args.Error(1)
}

// MockPlayerLookup is a mock implementation of PlayerLookup for testing
type MockPlayerLookup struct {
	mock.Mock
}

// Exists mocks the Exists method
func (m *MockPlayerLookup) Exists(ctx context.Context, playerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playerID)
	return args.Bool(0), args.Error(1)
}
