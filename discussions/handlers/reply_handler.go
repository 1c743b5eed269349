// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/discussions/errors"
	"github.com/pitchscout/pitchscout/discussions/models"
	"github.com/pitchscout/pitchscout/discussions/services"
	"github.com/pitchscout/pitchscout/internal/types"
)

// ReplyHandler handles reply-related HTTP requests
type ReplyHandler struct {
	replyService services.ReplyService
}

// NewReplyHandler creates a new ReplyHandler with injected dependencies
func NewReplyHandler(replyService services.ReplyService) *ReplyHandler {
	return &ReplyHandler{replyService: replyService}
}

// CreateReplyRequest represents the request body for posting a reply
type CreateReplyRequest struct {
	Content       string `json:"content"`
	ParentReplyID string `json:"parentReplyId"`
}

// CreateReply posts a reply to a thread. Requires a registered user.
// Endpoint: POST /threads/:threadId/replies
func (h *ReplyHandler) CreateReply(c *fiber.Ctx) error {
	threadID, err := uuid.FromString(c.Params("threadId"))
	if err != nil {
		return errors.HandleUUIDError(c, "threadId")
	}

	var req CreateReplyRequest
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

	input := services.CreateReplyInput{
		ThreadID:    threadID,
		OwnerUserID: user.UserID,
		Content:     req.Content,
	}
	if req.ParentReplyID != "" {
		parentID, err := uuid.FromString(req.ParentReplyID)
		if err != nil {
			return errors.HandleUUIDError(c, "parentReplyId")
		}
		input.ParentReplyID = &parentID
	}

	reply, err := h.replyService.CreateReply(c.Context(), input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(reply)
}

// ListReplies returns top-level replies for a thread
// Endpoint: GET /threads/:threadId/replies?limit=&offset=
func (h *ReplyHandler) ListReplies(c *fiber.Ctx) error {
	threadID, err := uuid.FromString(c.Params("threadId"))
	if err != nil {
		return errors.HandleUUIDError(c, "threadId")
	}

	replies, err := h.replyService.ListReplies(c.Context(), threadID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if replies == nil {
		replies = []*models.Reply{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"replies": replies})
}

// GetReply returns a single reply
// Endpoint: GET /replies/:replyId
func (h *ReplyHandler) GetReply(c *fiber.Ctx) error {
	replyID, err := uuid.FromString(c.Params("replyId"))
	if err != nil {
		return errors.HandleUUIDError(c, "replyId")
	}

	reply, err := h.replyService.GetReply(c.Context(), replyID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(reply)
}

// ListNestedReplies returns the nested replies of a parent reply
// Endpoint: GET /replies/:replyId/replies?limit=&offset=
func (h *ReplyHandler) ListNestedReplies(c *fiber.Ctx) error {
	parentID, err := uuid.FromString(c.Params("replyId"))
	if err != nil {
		return errors.HandleUUIDError(c, "replyId")
	}

	replies, err := h.replyService.ListNestedReplies(c.Context(), parentID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if replies == nil {
		replies = []*models.Reply{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"replies": replies})
}

// DeleteReply soft deletes a reply. Author or moderator only.
// Endpoint: DELETE /replies/:replyId
func (h *ReplyHandler) DeleteReply(c *fiber.Ctx) error {
	replyID, err := uuid.FromString(c.Params("replyId"))
	if err != nil {
		return errors.HandleUUIDError(c, "replyId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		})
	}

	if err := h.replyService.DeleteReply(c.Context(), replyID, user); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Reply deleted",
	})
}
