// Package ratelimit provides rate limiting middleware for vote endpoints.
// Votes are cheap to submit and expensive to moderate, so every voting route
// is throttled per identity before it reaches a handler.
package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pitchscout/pitchscout/internal/identity"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Limit holds max requests and window duration.
	Limit platformconfig.RateLimitConfig

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - defaults to the resolved voting identity)
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached defines the response when the rate limit is exceeded
	LimitReached func(c *fiber.Ctx) error
}

// New creates rate limiting middleware keyed by the voting identity, so a
// registered user and an anonymous voter behind the same NAT are throttled
// independently.
func New(config Config) fiber.Handler {
	if !config.Limit.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return identity.Resolve(c).Key() + ":" + c.Path()
		}
	}

	if config.LimitReached == nil {
		config.LimitReached = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    "RATE_LIMIT_EXCEEDED",
				"message": "Too many requests. Please try again later.",
			})
		}
	}

	max := config.Limit.Max
	if max <= 0 {
		max = 30
	}
	window := config.Limit.Duration
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: config.KeyGenerator,
		LimitReached: config.LimitReached,
		Next:         config.Next,
	})
}
