// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError_Codes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"poll not found", fmt.Errorf("%w: abc", ErrPollNotFound), http.StatusNotFound, CodePollNotFound},
		{"option not found", ErrOptionNotFound, http.StatusNotFound, CodeOptionNotFound},
		{"thread not found", fmt.Errorf("%w: abc", ErrThreadNotFound), http.StatusNotFound, CodeThreadNotFound},
		{"player not found", fmt.Errorf("%w: abc", ErrPlayerNotFound), http.StatusNotFound, CodePlayerNotFound},
		{"poll closed", ErrPollClosed, http.StatusConflict, CodePollClosed},
		{"duplicate vote", ErrDuplicateVote, http.StatusConflict, CodeDuplicateVote},
		{"not authorized", ErrNotAuthorized, http.StatusForbidden, CodeNotAuthorized},
		{"invalid poll data", ErrInvalidPollData, http.StatusBadRequest, CodeInvalidPollData},
		{"unexpected error", fmt.Errorf("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return HandleServiceError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}
