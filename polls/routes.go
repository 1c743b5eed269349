// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package polls

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pitchscout/pitchscout/internal/middleware/authjwt"
	"github.com/pitchscout/pitchscout/internal/middleware/ratelimit"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/pitchscout/pitchscout/polls/handlers"
)

// PollsHandlers holds all the handlers this router needs
type PollsHandlers struct {
	PollHandler *handlers.PollHandler
}

// RegisterRoutes is the single entry point for setting up poll routes.
// Poll voting accepts anonymous identities, so the vote/read routes attach
// the JWT middleware in pass-through mode; creation and closing require a
// registered user.
func RegisterRoutes(app *fiber.App, h *PollsHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})
	optionalAuth := authjwt.New(authjwt.Config{
		PublicKey:      cfg.JWT.PublicKey,
		ClaimKey:       "claim",
		UserCtxName:    types.UserCtxName,
		AllowAnonymous: true,
	})
	voteLimiter := ratelimit.New(ratelimit.Config{
		Limit: cfg.RateLimits.PollVote,
	})

	group := app.Group("/polls")

	group.Get("/", optionalAuth, h.PollHandler.ListPolls)
	group.Post("/", requireAuth, h.PollHandler.CreatePoll)

	group.Get("/:pollId", optionalAuth, h.PollHandler.GetPoll)
	group.Post("/:pollId/vote", optionalAuth, voteLimiter, h.PollHandler.Vote)
	group.Get("/:pollId/voted", optionalAuth, h.PollHandler.HasVoted)
	group.Get("/:pollId/results", optionalAuth, h.PollHandler.GetResults)
	group.Put("/:pollId/close", requireAuth, h.PollHandler.ClosePoll)
}
