// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Vote service specific errors
var (
	ErrVoteNotFound           = errors.New("vote not found")
	ErrTargetNotFound         = errors.New("target not found")
	ErrTargetDeleted          = errors.New("target has been deleted")
	ErrInvalidVoteType        = errors.New("invalid vote type")
	ErrInvalidVoteData        = errors.New("invalid vote data")
	ErrNotAuthorized          = errors.New("not authorized")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidUUID            = errors.New("invalid UUID format")
)

// Error codes
const (
	CodeVoteNotFound           = "VOTE_NOT_FOUND"
	CodeTargetNotFound         = "TARGET_NOT_FOUND"
	CodeTargetDeleted          = "TARGET_DELETED"
	CodeInvalidVoteType        = "INVALID_VOTE_TYPE"
	CodeInvalidVoteData        = "INVALID_VOTE_DATA"
	CodeNotAuthorized          = "NOT_AUTHORIZED"
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidUUID            = "INVALID_UUID"
	CodeValidationFailed       = "VALIDATION_FAILED"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTargetNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeTargetNotFound,
			Message: "Target not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrTargetDeleted):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeTargetDeleted,
			Message: "Target has been deleted",
			Details: err.Error(),
		})
	case errors.Is(err, ErrVoteNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeVoteNotFound,
			Message: "Vote not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidVoteType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidVoteType,
			Message: "Invalid vote type",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidVoteData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidVoteData,
			Message: "Invalid vote data",
			Details: err.Error(),
		})
	case errors.Is(err, ErrAuthenticationRequired):
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Code:    CodeAuthenticationRequired,
			Message: "Authentication required",
			Details: err.Error(),
		})
	case errors.Is(err, ErrNotAuthorized):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Code:    CodeNotAuthorized,
			Message: "Not authorized to perform this action",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
		Details: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
		Details: message,
	})
}

// HandleUUIDError handles UUID parsing errors with 400 Bad Request
func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	message := fmt.Sprintf("Invalid %s format", fieldName)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidUUID,
		Message: message,
		Details: message,
	})
}
