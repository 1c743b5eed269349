// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package identity resolves the voting principal for a request: either a
// registered user (from the JWT user context) or an anonymous participant
// keyed by client IP. Both poll voting paths share this resolution so the
// same dedup logic applies to registered and anonymous voters.
package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/types"
)

// Identity is the voting principal. Exactly two implementations exist:
// Registered and Anonymous. The Key method yields the dedup key persisted
// with poll votes and enforced by the storage-level uniqueness constraint.
type Identity interface {
	// Key returns the stable dedup key for this identity.
	Key() string
	// IsRegistered reports whether this identity belongs to an authenticated user.
	IsRegistered() bool
}

// Registered identifies an authenticated user.
type Registered struct {
	UserID uuid.UUID
	User   types.UserContext
}

// Key returns "user:<uuid>".
func (r Registered) Key() string { return "user:" + r.UserID.String() }

// IsRegistered always returns true.
func (r Registered) IsRegistered() bool { return true }

// Anonymous identifies an unauthenticated participant by client address.
type Anonymous struct {
	IPAddress string
	UserAgent string
}

// Key returns "ip:<address>".
func (a Anonymous) Key() string { return "ip:" + a.IPAddress }

// IsRegistered always returns false.
func (a Anonymous) IsRegistered() bool { return false }

// Resolve yields the identity for the current request. It never fails: if no
// authenticated user context is present it falls back to an anonymous identity
// derived from the client IP and user agent.
func Resolve(c *fiber.Ctx) Identity {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok && user.UserID != uuid.Nil {
		return Registered{UserID: user.UserID, User: user}
	}
	return Anonymous{
		IPAddress: ClientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// ClientIP extracts the client address, preferring the first usable hop of the
// X-Forwarded-For header over the transport-level remote address. Blank and
// "unknown" hops are skipped.
func ClientIP(c *fiber.Ctx) string {
	forwarded := c.Get(types.HeaderForwardedFor)
	for _, hop := range strings.Split(forwarded, ",") {
		hop = strings.TrimSpace(hop)
		if hop != "" && !strings.EqualFold(hop, "unknown") {
			return hop
		}
	}
	return c.IP()
}
