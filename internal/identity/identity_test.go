// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveVia runs Resolve inside a real Fiber handler and captures the result.
func resolveVia(t *testing.T, prepare func(c *fiber.Ctx), headers map[string]string) Identity {
	t.Helper()

	var resolved Identity
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		if prepare != nil {
			prepare(c)
		}
		resolved = Resolve(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, resolved)
	return resolved
}

func TestResolve_RegisteredUser(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	user := types.UserContext{UserID: userID, Username: "scout7", SystemRole: types.UserRole}

	resolved := resolveVia(t, func(c *fiber.Ctx) {
		c.Locals(types.UserCtxName, user)
	}, nil)

	registered, ok := resolved.(Registered)
	require.True(t, ok, "expected a registered identity")
	assert.Equal(t, userID, registered.UserID)
	assert.True(t, resolved.IsRegistered())
	assert.Equal(t, "user:"+userID.String(), resolved.Key())
}

func TestResolve_AnonymousFallsBackToRemoteAddr(t *testing.T) {
	resolved := resolveVia(t, nil, map[string]string{
		fiber.HeaderUserAgent: "Mozilla/5.0",
	})

	anon, ok := resolved.(Anonymous)
	require.True(t, ok, "expected an anonymous identity")
	assert.False(t, resolved.IsRegistered())
	assert.NotEmpty(t, anon.IPAddress)
	assert.Equal(t, "Mozilla/5.0", anon.UserAgent)
	assert.Equal(t, "ip:"+anon.IPAddress, resolved.Key())
}

func TestResolve_ForwardedForFirstHop(t *testing.T) {
	resolved := resolveVia(t, nil, map[string]string{
		types.HeaderForwardedFor: "203.0.113.7, 10.0.0.1",
	})

	anon, ok := resolved.(Anonymous)
	require.True(t, ok)
	assert.Equal(t, "203.0.113.7", anon.IPAddress)
}

func TestResolve_ForwardedForSkipsUnknownHops(t *testing.T) {
	t.Run("unknown first hop", func(t *testing.T) {
		resolved := resolveVia(t, nil, map[string]string{
			types.HeaderForwardedFor: "unknown, 203.0.113.9",
		})
		anon := resolved.(Anonymous)
		assert.Equal(t, "203.0.113.9", anon.IPAddress)
	})

	t.Run("blank first hop", func(t *testing.T) {
		resolved := resolveVia(t, nil, map[string]string{
			types.HeaderForwardedFor: " , 198.51.100.4",
		})
		anon := resolved.(Anonymous)
		assert.Equal(t, "198.51.100.4", anon.IPAddress)
	})

	t.Run("all hops unusable falls back", func(t *testing.T) {
		resolved := resolveVia(t, nil, map[string]string{
			types.HeaderForwardedFor: "unknown, ",
		})
		anon := resolved.(Anonymous)
		assert.NotEmpty(t, anon.IPAddress)
		assert.NotEqual(t, "unknown", anon.IPAddress)
	})
}

func TestIdentityKeys_DistinguishRegisteredFromAnonymous(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	registered := Registered{UserID: userID}
	anon := Anonymous{IPAddress: userID.String()}

	// Even a crafted IP equal to a user ID cannot collide with that user's key.
	assert.NotEqual(t, registered.Key(), anon.Key())
}
