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

// Discussion service specific errors
var (
	ErrThreadNotFound   = errors.New("thread not found")
	ErrReplyNotFound    = errors.New("reply not found")
	ErrThreadLocked     = errors.New("thread is locked")
	ErrInvalidReplyData = errors.New("invalid reply data")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidUUID      = errors.New("invalid UUID format")
)

// Error codes
const (
	CodeThreadNotFound   = "THREAD_NOT_FOUND"
	CodeReplyNotFound    = "REPLY_NOT_FOUND"
	CodeThreadLocked     = "THREAD_LOCKED"
	CodeInvalidReplyData = "INVALID_REPLY_DATA"
	CodeNotAuthorized    = "NOT_AUTHORIZED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidUUID      = "INVALID_UUID"
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
	case errors.Is(err, ErrThreadNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeThreadNotFound,
			Message: "Thread not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrReplyNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeReplyNotFound,
			Message: "Reply not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrThreadLocked):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeThreadLocked,
			Message: "Thread is locked",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidReplyData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidReplyData,
			Message: "Invalid reply data",
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
