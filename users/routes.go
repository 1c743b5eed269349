// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package users

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pitchscout/pitchscout/users/handlers"
)

// UsersHandlers holds all the handlers this router needs
type UsersHandlers struct {
	UserHandler *handlers.UserHandler
}

// RegisterRoutes sets up the public profile routes.
func RegisterRoutes(app *fiber.App, h *UsersHandlers) {
	group := app.Group("/users")
	group.Get("/:userId", h.UserHandler.GetProfile)
}
