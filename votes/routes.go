// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package votes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pitchscout/pitchscout/internal/middleware/authjwt"
	"github.com/pitchscout/pitchscout/internal/middleware/ratelimit"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/votes/handlers"
)

// VotesHandlers holds the per-target-kind handlers this router needs
type VotesHandlers struct {
	ReplyVoteHandler   *handlers.VoteHandler
	CommentVoteHandler *handlers.VoteHandler
}

// RegisterRoutes is the single entry point for setting up vote routes. All
// vote routes require a registered user; the score read is public.
func RegisterRoutes(app *fiber.App, h *VotesHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})
	voteLimiter := ratelimit.New(ratelimit.Config{
		Limit: cfg.RateLimits.ReplyVote,
	})
	reportLimiter := ratelimit.New(ratelimit.Config{
		Limit: cfg.RateLimits.Report,
	})

	register := func(group fiber.Router, handler *handlers.VoteHandler) {
		group.Post("/:targetId/vote", requireAuth, voteLimiter, handler.Vote)
		group.Get("/:targetId/score", handler.NetScore)
		group.Post("/:targetId/report", requireAuth, reportLimiter, handler.Report)
		group.Put("/:targetId/feature", requireAuth, handler.Feature)
		group.Delete("/:targetId/feature", requireAuth, handler.Unfeature)
	}

	register(app.Group("/replies"), h.ReplyVoteHandler)
	register(app.Group("/player-comments"), h.CommentVoteHandler)
}
