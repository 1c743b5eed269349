// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Thread is a discussion topic. The engagement subsystem only needs it as an
// anchor for replies and as an optional poll association; thread CRUD is
// handled by the wider forum service.
type Thread struct {
	ID          uuid.UUID `db:"id" json:"objectId"`
	Title       string    `db:"title" json:"title"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	IsLocked    bool      `db:"is_locked" json:"isLocked"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
