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
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/players/errors"
	"github.com/pitchscout/pitchscout/players/models"
	"github.com/pitchscout/pitchscout/players/repository"
)

const (
	maxCommentContentLength = 10000
	defaultCommentPageSize  = 20
	maxCommentPageSize      = 100
)

// CreateCommentInput carries the fields needed to post a scouting comment.
type CreateCommentInput struct {
	PlayerID        uuid.UUID
	ParentCommentID *uuid.UUID
	OwnerUserID     uuid.UUID
	Content         string
}

// CommentService defines the business logic for player scouting comments.
type CommentService interface {
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error)
	CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)
	ListComments(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	ListNestedComments(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID, user types.UserContext) error
}

type commentService struct {
	playerRepo  repository.PlayerRepository
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService with injected dependencies
func NewCommentService(playerRepo repository.PlayerRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{
		playerRepo:  playerRepo,
		commentRepo: commentRepo,
	}
}

// GetPlayer retrieves a player profile
func (s *commentService) GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	player, err := s.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrPlayerNotFound, playerID)
	}
	return player, nil
}

// CreateComment validates and posts a comment on a player. Comments nest one
// level deep: a reply to a nested comment is attached to the same parent.
func (s *commentService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", errors.ErrInvalidCommentData)
	}
	if len(content) > maxCommentContentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", errors.ErrInvalidCommentData, maxCommentContentLength)
	}

	exists, err := s.playerRepo.Exists(ctx, input.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate player: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", errors.ErrPlayerNotFound, input.PlayerID)
	}

	parentID := input.ParentCommentID
	if parentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent %s", errors.ErrCommentNotFound, *parentID)
		}
		if parent.PlayerID != input.PlayerID {
			return nil, fmt.Errorf("%w: parent comment belongs to a different player", errors.ErrInvalidCommentData)
		}
		if parent.IsDeleted {
			return nil, fmt.Errorf("%w: parent %s", errors.ErrCommentNotFound, *parentID)
		}
		if parent.ParentCommentID != nil {
			parentID = parent.ParentCommentID
		}
	}

	comment := &models.Comment{
		ID:              uuid.Must(uuid.NewV4()),
		PlayerID:        input.PlayerID,
		ParentCommentID: parentID,
		OwnerUserID:     input.OwnerUserID,
		Content:         content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetComment retrieves a single comment
func (s *commentService) GetComment(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrCommentNotFound, commentID)
	}
	if comment.IsDeleted {
		return nil, fmt.Errorf("%w: %s", errors.ErrCommentNotFound, commentID)
	}
	return comment, nil
}

// ListComments returns top-level comments for a player, newest first
func (s *commentService) ListComments(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	exists, err := s.playerRepo.Exists(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate player: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", errors.ErrPlayerNotFound, playerID)
	}

	limit = clampCommentPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.commentRepo.FindByPlayerID(ctx, playerID, limit, offset)
}

// ListNestedComments returns the nested comments of a parent, oldest first
func (s *commentService) ListNestedComments(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.commentRepo.FindByID(ctx, parentID); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrCommentNotFound, parentID)
	}

	limit = clampCommentPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.commentRepo.FindReplies(ctx, parentID, limit, offset)
}

// DeleteComment soft deletes a comment. Only the author or a moderator may delete.
func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID, user types.UserContext) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrCommentNotFound, commentID)
	}

	if comment.OwnerUserID != user.UserID && !user.CanModerate() {
		return fmt.Errorf("%w: only the author or a moderator can delete a comment", errors.ErrNotAuthorized)
	}

	if comment.IsDeleted {
		return nil
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func clampCommentPageSize(limit int) int {
	if limit <= 0 || limit > maxCommentPageSize {
		return defaultCommentPageSize
	}
	return limit
}
