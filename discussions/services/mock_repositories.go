// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/discussions/models"
	"github.com/stretchr/testify/mock"
)

// MockThreadRepository is a mock implementation of repository.ThreadRepository
type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) FindByID(ctx context.Context, threadID uuid.UUID) (*models.Thread, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockThreadRepository) Exists(ctx context.Context, threadID uuid.UUID) (bool, error) {
	args := m.Called(ctx, threadID)
	return args.Bool(0), args.Error(1)
}

// MockReplyRepository is a mock implementation of repository.ReplyRepository
type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	args := m.Called(ctx, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) FindByThreadID(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	args := m.Called(ctx, threadID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) FindReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	args := m.Called(ctx, parentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) GetVoteCounters(ctx context.Context, replyID uuid.UUID) (int64, int64, bool, error) {
	args := m.Called(ctx, replyID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockReplyRepository) ApplyVoteDelta(ctx context.Context, replyID uuid.UUID, upDelta, downDelta int) error {
	args := m.Called(ctx, replyID, upDelta, downDelta)
	return args.Error(0)
}

func (m *MockReplyRepository) SetFeatured(ctx context.Context, replyID uuid.UUID, featured bool) error {
	args := m.Called(ctx, replyID, featured)
	return args.Error(0)
}

func (m *MockReplyRepository) Delete(ctx context.Context, replyID uuid.UUID) error {
	args := m.Called(ctx, replyID)
	return args.Error(0)
}

func (m *MockReplyRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
