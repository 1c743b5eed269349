// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package discussions

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pitchscout/pitchscout/discussions/handlers"
	"github.com/pitchscout/pitchscout/internal/middleware/authjwt"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
	"github.com/pitchscout/pitchscout/internal/types"
)

// DiscussionsHandlers holds all the handlers this router needs
type DiscussionsHandlers struct {
	ReplyHandler *handlers.ReplyHandler
}

// RegisterRoutes is the single entry point for setting up discussion routes.
// Reading is public; posting and deleting require a registered user.
func RegisterRoutes(app *fiber.App, h *DiscussionsHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})

	threads := app.Group("/threads")
	threads.Get("/:threadId/replies", h.ReplyHandler.ListReplies)
	threads.Post("/:threadId/replies", requireAuth, h.ReplyHandler.CreateReply)

	replies := app.Group("/replies")
	replies.Get("/:replyId", h.ReplyHandler.GetReply)
	replies.Get("/:replyId/replies", h.ReplyHandler.ListNestedReplies)
	replies.Delete("/:replyId", requireAuth, h.ReplyHandler.DeleteReply)
}
