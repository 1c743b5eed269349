// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/pitchscout/pitchscout/discussions"
	discussionHandlers "github.com/pitchscout/pitchscout/discussions/handlers"
	"github.com/pitchscout/pitchscout/discussions/repository"
	discussionServices "github.com/pitchscout/pitchscout/discussions/services"
	"github.com/pitchscout/pitchscout/internal/cache"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
	"github.com/pitchscout/pitchscout/internal/middleware/requestid"
	"github.com/pitchscout/pitchscout/internal/pkg/log"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
	"github.com/pitchscout/pitchscout/players"
	playerHandlers "github.com/pitchscout/pitchscout/players/handlers"
	playersRepository "github.com/pitchscout/pitchscout/players/repository"
	playerServices "github.com/pitchscout/pitchscout/players/services"
	"github.com/pitchscout/pitchscout/polls"
	pollHandlers "github.com/pitchscout/pitchscout/polls/handlers"
	pollRepository "github.com/pitchscout/pitchscout/polls/repository"
	pollServices "github.com/pitchscout/pitchscout/polls/services"
	"github.com/pitchscout/pitchscout/users"
	userHandlers "github.com/pitchscout/pitchscout/users/handlers"
	usersRepository "github.com/pitchscout/pitchscout/users/repository"
	"github.com/pitchscout/pitchscout/votes"
	voteHandlers "github.com/pitchscout/pitchscout/votes/handlers"
	voteModels "github.com/pitchscout/pitchscout/votes/models"
	voteRepository "github.com/pitchscout/pitchscout/votes/repository"
	voteServices "github.com/pitchscout/pitchscout/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load platform config: %v", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.ErrorWithContext(c.Context(), "unhandled error on %s: %v", c.Path(), err)

			// Handlers write their own error payloads; only fill in when empty.
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))
	app.Use(requestid.New())

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Error("Failed to create postgres client: %v", err)
		panic(err)
	}
	defer pgClient.Close()

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := pgClient.WaitForReady(waitCtx, 2*time.Second); err != nil {
		log.Error("PostgreSQL not reachable: %v", err)
		panic(err)
	}

	// Redis backs nothing authoritative; the service runs without it.
	var redisCache *cache.RedisCache
	if cfg.Cache.Enabled {
		redisCache, err = cache.NewRedisCache(&cfg.Cache.Redis)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache: %v", err)
		} else {
			defer redisCache.Close()
		}
	}

	// Repositories
	threadRepo := repository.NewPostgresThreadRepository(pgClient)
	replyRepo := repository.NewPostgresReplyRepository(pgClient)
	playerRepo := playersRepository.NewPostgresPlayerRepository(pgClient)
	commentRepo := playersRepository.NewPostgresCommentRepository(pgClient)
	pollRepo := pollRepository.NewPostgresPollRepository(pgClient)
	replyVoteRepo := voteRepository.NewPostgresVoteRepository(pgClient, voteRepository.ReplyVotesTable)
	commentVoteRepo := voteRepository.NewPostgresVoteRepository(pgClient, voteRepository.PlayerCommentVotesTable)
	reportRepo := voteRepository.NewPostgresReportRepository(pgClient)
	userRepo := usersRepository.NewPostgresUserRepository(pgClient)

	// Services
	var pollService pollServices.PollService
	if redisCache != nil {
		pollService = pollServices.NewPollServiceWithCache(pollRepo, threadRepo, playerRepo, redisCache)
	} else {
		pollService = pollServices.NewPollService(pollRepo, threadRepo, playerRepo)
	}
	replyVoteService := voteServices.NewVoteService(replyVoteRepo, replyRepo, reportRepo, voteModels.TargetKindReply)
	commentVoteService := voteServices.NewVoteService(commentVoteRepo, commentRepo, reportRepo, voteModels.TargetKindComment)
	replyService := discussionServices.NewReplyService(threadRepo, replyRepo)
	commentService := playerServices.NewCommentService(playerRepo, commentRepo)

	// Routes
	polls.RegisterRoutes(app, &polls.PollsHandlers{
		PollHandler: pollHandlers.NewPollHandler(pollService),
	}, cfg)
	votes.RegisterRoutes(app, &votes.VotesHandlers{
		ReplyVoteHandler:   voteHandlers.NewVoteHandler(replyVoteService),
		CommentVoteHandler: voteHandlers.NewVoteHandler(commentVoteService),
	}, cfg)
	discussions.RegisterRoutes(app, &discussions.DiscussionsHandlers{
		ReplyHandler: discussionHandlers.NewReplyHandler(replyService),
	}, cfg)
	players.RegisterRoutes(app, &players.PlayersHandlers{
		CommentHandler: playerHandlers.NewCommentHandler(commentService),
	}, cfg)
	users.RegisterRoutes(app, &users.UsersHandlers{
		UserHandler: userHandlers.NewUserHandler(userRepo),
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting %s on %s", cfg.App.Name, addr)
	if err := app.Listen(addr); err != nil {
		log.Error("Server stopped: %v", err)
		panic(err)
	}
}
