// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// User is the minimal account projection the engagement subsystem needs:
// identity for vote attribution and role for authorization checks.
type User struct {
	ID          uuid.UUID `db:"id" json:"objectId"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	Avatar      string    `db:"avatar" json:"avatar"`
	SystemRole  string    `db:"system_role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
