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

// Player service specific errors
var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidCommentData = errors.New("invalid comment data")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidUUID        = errors.New("invalid UUID format")
)

// Error codes
const (
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeCommentNotFound    = "COMMENT_NOT_FOUND"
	CodeInvalidCommentData = "INVALID_COMMENT_DATA"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidUUID        = "INVALID_UUID"
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
	case errors.Is(err, ErrPlayerNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodePlayerNotFound,
			Message: "Player not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrCommentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeCommentNotFound,
			Message: "Comment not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidCommentData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidCommentData,
			Message: "Invalid comment data",
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
