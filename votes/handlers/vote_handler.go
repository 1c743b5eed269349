// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/identity"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/votes/errors"
	"github.com/pitchscout/pitchscout/votes/services"
)

// VoteHandler handles vote-related HTTP requests for one votable target
// kind. It is instantiated once for discussion replies and once for player
// comments, each wired to its own vote service.
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteRequest represents the request body for voting
type VoteRequest struct {
	TypeID int `json:"typeId"` // 1=Up, 2=Down
}

// ReportRequest represents the request body for reporting a target
type ReportRequest struct {
	Reason string `json:"reason"`
}

// Vote applies one vote state transition for the authenticated user
// Endpoint: POST /:targetId/vote
// Body: {"typeId": 1}
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	targetID, err := uuid.FromString(c.Params("targetId"))
	if err != nil {
		return errors.HandleUUIDError(c, "targetId")
	}

	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.TypeID != 1 && req.TypeID != 2 {
		return errors.HandleValidationError(c, "typeId must be 1 (Up) or 2 (Down)")
	}

	result, err := h.voteService.Vote(c.Context(), targetID, identity.Resolve(c), req.TypeID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// NetScore returns the derived score of a target
// Endpoint: GET /:targetId/score
func (h *VoteHandler) NetScore(c *fiber.Ctx) error {
	targetID, err := uuid.FromString(c.Params("targetId"))
	if err != nil {
		return errors.HandleUUIDError(c, "targetId")
	}

	score, err := h.voteService.NetScore(c.Context(), targetID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"netScore": score})
}

// Report records a moderation flag against a target
// Endpoint: POST /:targetId/report
// Body: {"reason": "..."}
func (h *VoteHandler) Report(c *fiber.Ctx) error {
	targetID, err := uuid.FromString(c.Params("targetId"))
	if err != nil {
		return errors.HandleUUIDError(c, "targetId")
	}

	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	report, err := h.voteService.Report(c.Context(), targetID, identity.Resolve(c), req.Reason)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Report recorded",
		"reportId": report.ID,
	})
}

// Feature marks a target as featured. Moderators only.
// Endpoint: PUT /:targetId/feature
func (h *VoteHandler) Feature(c *fiber.Ctx) error {
	return h.setFeatured(c, true)
}

// Unfeature clears the featured flag. Moderators only.
// Endpoint: DELETE /:targetId/feature
func (h *VoteHandler) Unfeature(c *fiber.Ctx) error {
	return h.setFeatured(c, false)
}

func (h *VoteHandler) setFeatured(c *fiber.Ctx, featured bool) error {
	targetID, err := uuid.FromString(c.Params("targetId"))
	if err != nil {
		return errors.HandleUUIDError(c, "targetId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    errors.CodeAuthenticationRequired,
			Message: "Authentication required",
		})
	}

	if featured {
		err = h.voteService.Feature(c.Context(), targetID, user)
	} else {
		err = h.voteService.Unfeature(c.Context(), targetID, user)
	}
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Featured flag updated",
	})
}
