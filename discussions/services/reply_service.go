// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/discussions/errors"
	"github.com/pitchscout/pitchscout/discussions/models"
	"github.com/pitchscout/pitchscout/discussions/repository"
	"github.com/pitchscout/pitchscout/internal/types"
)

const (
	maxReplyContentLength = 10000
	defaultReplyPageSize  = 20
	maxReplyPageSize      = 100
)

// CreateReplyInput carries the fields needed to post a reply.
type CreateReplyInput struct {
	ThreadID      uuid.UUID
	ParentReplyID *uuid.UUID
	OwnerUserID   uuid.UUID
	Content       string
}

// ReplyService defines the business logic for discussion replies.
type ReplyService interface {
	CreateReply(ctx context.Context, input CreateReplyInput) (*models.Reply, error)
	GetReply(ctx context.Context, replyID uuid.UUID) (*models.Reply, error)
	ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*models.Reply, error)
	ListNestedReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Reply, error)
	DeleteReply(ctx context.Context, replyID uuid.UUID, user types.UserContext) error
}

type replyService struct {
	threadRepo repository.ThreadRepository
	replyRepo  repository.ReplyRepository
}

// NewReplyService creates a new ReplyService with injected dependencies
func NewReplyService(threadRepo repository.ThreadRepository, replyRepo repository.ReplyRepository) ReplyService {
	return &replyService{
		threadRepo: threadRepo,
		replyRepo:  replyRepo,
	}
}

// CreateReply validates and posts a reply. Replies nest one level deep:
// a reply to a nested reply is attached to the same parent.
func (s *replyService) CreateReply(ctx context.Context, input CreateReplyInput) (*models.Reply, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", errors.ErrInvalidReplyData)
	}
	if len(content) > maxReplyContentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", errors.ErrInvalidReplyData, maxReplyContentLength)
	}

	thread, err := s.threadRepo.FindByID(ctx, input.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrThreadNotFound, input.ThreadID)
	}
	if thread.IsLocked {
		return nil, fmt.Errorf("%w: %s", errors.ErrThreadLocked, thread.ID)
	}

	parentID := input.ParentReplyID
	if parentID != nil {
		parent, err := s.replyRepo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent %s", errors.ErrReplyNotFound, *parentID)
		}
		if parent.ThreadID != input.ThreadID {
			return nil, fmt.Errorf("%w: parent reply belongs to a different thread", errors.ErrInvalidReplyData)
		}
		if parent.IsDeleted {
			return nil, fmt.Errorf("%w: parent %s", errors.ErrReplyNotFound, *parentID)
		}
		// Flatten deep nesting onto the top-level parent.
		if parent.ParentReplyID != nil {
			parentID = parent.ParentReplyID
		}
	}

	reply := &models.Reply{
		ID:            uuid.Must(uuid.NewV4()),
		ThreadID:      input.ThreadID,
		ParentReplyID: parentID,
		OwnerUserID:   input.OwnerUserID,
		Content:       content,
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	return reply, nil
}

// GetReply retrieves a single reply
func (s *replyService) GetReply(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrReplyNotFound, replyID)
	}
	if reply.IsDeleted {
		return nil, fmt.Errorf("%w: %s", errors.ErrReplyNotFound, replyID)
	}
	return reply, nil
}

// ListReplies returns top-level replies for a thread, newest first
func (s *replyService) ListReplies(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	exists, err := s.threadRepo.Exists(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate thread: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", errors.ErrThreadNotFound, threadID)
	}

	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.replyRepo.FindByThreadID(ctx, threadID, limit, offset)
}

// ListNestedReplies returns the nested replies of a parent, oldest first
func (s *replyService) ListNestedReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Reply, error) {
	if _, err := s.replyRepo.FindByID(ctx, parentID); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrReplyNotFound, parentID)
	}

	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.replyRepo.FindReplies(ctx, parentID, limit, offset)
}

// DeleteReply soft deletes a reply. Only the author or a moderator may delete.
func (s *replyService) DeleteReply(ctx context.Context, replyID uuid.UUID, user types.UserContext) error {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrReplyNotFound, replyID)
	}

	if reply.OwnerUserID != user.UserID && !user.CanModerate() {
		return fmt.Errorf("%w: only the author or a moderator can delete a reply", errors.ErrNotAuthorized)
	}

	if reply.IsDeleted {
		return nil
	}
	return s.replyRepo.Delete(ctx, replyID)
}

func clampPageSize(limit int) int {
	if limit <= 0 || limit > maxReplyPageSize {
		return defaultReplyPageSize
	}
	return limit
}
