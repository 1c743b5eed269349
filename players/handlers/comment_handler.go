// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/players/errors"
	"github.com/pitchscout/pitchscout/players/models"
	"github.com/pitchscout/pitchscout/players/services"
)

// CommentHandler handles player comment HTTP requests
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the request body for posting a comment
type CreateCommentRequest struct {
	Content         string `json:"content"`
	ParentCommentID string `json:"parentCommentId"`
}

// GetPlayer returns a player profile
// Endpoint: GET /players/:playerId
func (h *CommentHandler) GetPlayer(c *fiber.Ctx) error {
	playerID, err := uuid.FromString(c.Params("playerId"))
	if err != nil {
		return errors.HandleUUIDError(c, "playerId")
	}

	player, err := h.commentService.GetPlayer(c.Context(), playerID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(player)
}

// CreateComment posts a scouting comment on a player. Requires a registered user.
// Endpoint: POST /players/:playerId/comments
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	playerID, err := uuid.FromString(c.Params("playerId"))
	if err != nil {
		return errors.HandleUUIDError(c, "playerId")
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		})
	}

	input := services.CreateCommentInput{
		PlayerID:    playerID,
		OwnerUserID: user.UserID,
		Content:     req.Content,
	}
	if req.ParentCommentID != "" {
		parentID, err := uuid.FromString(req.ParentCommentID)
		if err != nil {
			return errors.HandleUUIDError(c, "parentCommentId")
		}
		input.ParentCommentID = &parentID
	}

	comment, err := h.commentService.CreateComment(c.Context(), input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// ListComments returns top-level comments for a player
// Endpoint: GET /players/:playerId/comments?limit=&offset=
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	playerID, err := uuid.FromString(c.Params("playerId"))
	if err != nil {
		return errors.HandleUUIDError(c, "playerId")
	}

	comments, err := h.commentService.ListComments(c.Context(), playerID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"comments": comments})
}

// GetComment returns a single comment
// Endpoint: GET /player-comments/:commentId
func (h *CommentHandler) GetComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	comment, err := h.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(comment)
}

// ListNestedComments returns the nested comments of a parent comment
// Endpoint: GET /player-comments/:commentId/replies?limit=&offset=
func (h *CommentHandler) ListNestedComments(c *fiber.Ctx) error {
	parentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	comments, err := h.commentService.ListNestedComments(c.Context(), parentID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"comments": comments})
}

// DeleteComment soft deletes a comment. Author or moderator only.
// Endpoint: DELETE /player-comments/:commentId
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		})
	}

	if err := h.commentService.DeleteComment(c.Context(), commentID, user); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
