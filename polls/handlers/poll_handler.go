// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/identity"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/polls/errors"
	"github.com/pitchscout/pitchscout/polls/models"
	"github.com/pitchscout/pitchscout/polls/repository"
	"github.com/pitchscout/pitchscout/polls/services"
)

// PollHandler handles all poll-related HTTP requests
type PollHandler struct {
	pollService services.PollService
}

// NewPollHandler creates a new PollHandler with injected dependencies
func NewPollHandler(pollService services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreatePollRequest represents the request body for poll creation
type CreatePollRequest struct {
	Question    string   `json:"question"`
	Description string   `json:"description"`
	PollType    string   `json:"pollType"`
	Options     []string `json:"options"`
	ThreadID    string   `json:"threadId"`
	PlayerID    string   `json:"playerId"`
	IsAnonymous bool     `json:"isAnonymous"`
	ExpiresAt   *int64   `json:"expiresAt"` // unix seconds
}

// VoteRequest represents the request body for casting a poll vote
type VoteRequest struct {
	OptionID string `json:"optionId"` // UUID as string
}

// CreatePoll handles poll creation
// Endpoint: POST /polls
func (h *PollHandler) CreatePoll(c *fiber.Ctx) error {
	var req CreatePollRequest
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

	input := services.CreatePollInput{
		Question:    req.Question,
		Description: req.Description,
		PollType:    req.PollType,
		OwnerUserID: user.UserID,
		OptionTexts: req.Options,
		IsAnonymous: req.IsAnonymous,
	}

	if req.ThreadID != "" {
		threadID, err := uuid.FromString(req.ThreadID)
		if err != nil {
			return errors.HandleUUIDError(c, "threadId")
		}
		input.ThreadID = &threadID
	}
	if req.PlayerID != "" {
		playerID, err := uuid.FromString(req.PlayerID)
		if err != nil {
			return errors.HandleUUIDError(c, "playerId")
		}
		input.PlayerID = &playerID
	}
	if req.ExpiresAt != nil {
		expiresAt := time.Unix(*req.ExpiresAt, 0)
		input.ExpiresAt = &expiresAt
	}

	poll, err := h.pollService.CreatePoll(c.Context(), input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(poll)
}

// ListPolls handles poll listing with optional filters
// Endpoint: GET /polls?threadId=&playerId=&active=&limit=&offset=
func (h *PollHandler) ListPolls(c *fiber.Ctx) error {
	filter := repository.ListFilter{
		ActiveOnly: c.QueryBool("active"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}

	if raw := c.Query("threadId"); raw != "" {
		threadID, err := uuid.FromString(raw)
		if err != nil {
			return errors.HandleUUIDError(c, "threadId")
		}
		filter.ThreadID = &threadID
	}
	if raw := c.Query("playerId"); raw != "" {
		playerID, err := uuid.FromString(raw)
		if err != nil {
			return errors.HandleUUIDError(c, "playerId")
		}
		filter.PlayerID = &playerID
	}

	polls, err := h.pollService.ListPolls(c.Context(), filter)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if polls == nil {
		polls = []*models.Poll{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"polls": polls})
}

// GetPoll returns a poll with its options
// Endpoint: GET /polls/:pollId
func (h *PollHandler) GetPoll(c *fiber.Ctx) error {
	pollID, err := uuid.FromString(c.Params("pollId"))
	if err != nil {
		return errors.HandleUUIDError(c, "pollId")
	}

	poll, options, err := h.pollService.GetPoll(c.Context(), pollID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"poll":    poll,
		"options": options,
	})
}

// Vote handles casting a poll vote. Anonymous voters are allowed; the
// identity resolver keys them by client IP.
// Endpoint: POST /polls/:pollId/vote
// Body: {"optionId": "uuid"}
func (h *PollHandler) Vote(c *fiber.Ctx) error {
	pollID, err := uuid.FromString(c.Params("pollId"))
	if err != nil {
		return errors.HandleUUIDError(c, "pollId")
	}

	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.OptionID == "" {
		return errors.HandleValidationError(c, "optionId is required")
	}
	optionID, err := uuid.FromString(req.OptionID)
	if err != nil {
		return errors.HandleUUIDError(c, "optionId")
	}

	voter := identity.Resolve(c)

	vote, err := h.pollService.Vote(c.Context(), pollID, optionID, voter)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Vote recorded successfully",
		"voteId":  vote.ID,
	})
}

// HasVoted reports whether the current identity already voted on the poll
// Endpoint: GET /polls/:pollId/voted
func (h *PollHandler) HasVoted(c *fiber.Ctx) error {
	pollID, err := uuid.FromString(c.Params("pollId"))
	if err != nil {
		return errors.HandleUUIDError(c, "pollId")
	}

	voter := identity.Resolve(c)

	voted, err := h.pollService.HasVoted(c.Context(), pollID, voter)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"hasVoted": voted})
}

// GetResults returns the live result view of a poll
// Endpoint: GET /polls/:pollId/results
func (h *PollHandler) GetResults(c *fiber.Ctx) error {
	pollID, err := uuid.FromString(c.Params("pollId"))
	if err != nil {
		return errors.HandleUUIDError(c, "pollId")
	}

	results, err := h.pollService.GetResults(c.Context(), pollID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(results)
}

// ClosePoll deactivates a poll. Author or moderator only.
// Endpoint: PUT /polls/:pollId/close
func (h *PollHandler) ClosePoll(c *fiber.Ctx) error {
	pollID, err := uuid.FromString(c.Params("pollId"))
	if err != nil {
		return errors.HandleUUIDError(c, "pollId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		})
	}

	if err := h.pollService.ClosePoll(c.Context(), pollID, user); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Poll closed",
	})
}
