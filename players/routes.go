// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package players

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pitchscout/pitchscout/internal/middleware/authjwt"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/players/handlers"
)

// PlayersHandlers holds all the handlers this router needs
type PlayersHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up player routes.
// Reading is public; posting and deleting require a registered user.
func RegisterRoutes(app *fiber.App, h *PlayersHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})

	players := app.Group("/players")
	players.Get("/:playerId", h.CommentHandler.GetPlayer)
	players.Get("/:playerId/comments", h.CommentHandler.ListComments)
	players.Post("/:playerId/comments", requireAuth, h.CommentHandler.CreateComment)

	comments := app.Group("/player-comments")
	comments.Get("/:commentId", h.CommentHandler.GetComment)
	comments.Get("/:commentId/replies", h.CommentHandler.ListNestedComments)
	comments.Delete("/:commentId", requireAuth, h.CommentHandler.DeleteComment)
}
