// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/players/models"
	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock implementation of repository.PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) FindByID(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Exists(ctx context.Context, playerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playerID)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByPlayerID(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, playerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, parentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetVoteCounters(ctx context.Context, commentID uuid.UUID) (int64, int64, bool, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockCommentRepository) ApplyVoteDelta(ctx context.Context, commentID uuid.UUID, upDelta, downDelta int) error {
	args := m.Called(ctx, commentID, upDelta, downDelta)
	return args.Error(0)
}

func (m *MockCommentRepository) SetFeatured(ctx context.Context, commentID uuid.UUID, featured bool) error {
	args := m.Called(ctx, commentID, featured)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
