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

// Poll service specific errors
var (
	ErrPollNotFound    = errors.New("poll not found")
	ErrOptionNotFound  = errors.New("poll option not found")
	ErrPollClosed      = errors.New("poll is closed")
	ErrDuplicateVote   = errors.New("identity has already voted on this poll")
	ErrInvalidPollData = errors.New("invalid poll data")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidUUID     = errors.New("invalid UUID format")
	ErrThreadNotFound  = errors.New("thread not found")
	ErrPlayerNotFound  = errors.New("player not found")
)

// Error codes
const (
	CodePollNotFound    = "POLL_NOT_FOUND"
	CodeOptionNotFound  = "OPTION_NOT_FOUND"
	CodeThreadNotFound  = "THREAD_NOT_FOUND"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodePollClosed      = "POLL_CLOSED"
	CodeDuplicateVote   = "DUPLICATE_VOTE"
	CodeInvalidPollData = "INVALID_POLL_DATA"
	CodeNotAuthorized   = "NOT_AUTHORIZED"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidUUID     = "INVALID_UUID"
	CodeValidationFailed = "VALIDATION_FAILED"
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
	case errors.Is(err, ErrPollNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodePollNotFound,
			Message: "Poll not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrOptionNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeOptionNotFound,
			Message: "Poll option not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrThreadNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeThreadNotFound,
			Message: "Thread not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrPlayerNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodePlayerNotFound,
			Message: "Player not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrPollClosed):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodePollClosed,
			Message: "Poll is closed for voting",
			Details: err.Error(),
		})
	case errors.Is(err, ErrDuplicateVote):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeDuplicateVote,
			Message: "You have already voted on this poll",
			Details: err.Error(),
		})
	case errors.Is(err, ErrNotAuthorized):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Code:    CodeNotAuthorized,
			Message: "Not authorized to perform this action",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidPollData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidPollData,
			Message: "Invalid poll data",
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
