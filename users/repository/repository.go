// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/users/models"
)

// UserRepository is the lookup surface the engagement subsystem consumes.
// Account management lives elsewhere; this package only reads.
type UserRepository interface {
	// FindByID retrieves a user by ID, or ErrNotFound if no such user exists.
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}
