// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Comment is a scouting note attached to a player profile. It carries the
// same denormalized vote counters as discussion replies so both target kinds
// share one vote service.
type Comment struct {
	ID              uuid.UUID  `db:"id" json:"objectId"`
	PlayerID        uuid.UUID  `db:"player_id" json:"playerId"`
	ParentCommentID *uuid.UUID `db:"parent_comment_id" json:"parentCommentId,omitempty"`
	OwnerUserID     uuid.UUID  `db:"owner_user_id" json:"ownerUserId"`
	Content         string     `db:"content" json:"content"`
	Upvotes         int64      `db:"upvotes" json:"upvotes"`
	Downvotes       int64      `db:"downvotes" json:"downvotes"`
	IsFeatured      bool       `db:"is_featured" json:"isFeatured"`
	IsDeleted       bool       `db:"is_deleted" json:"isDeleted"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// NetScore is derived from the two counters and never stored separately.
func (c *Comment) NetScore() int64 {
	return c.Upvotes - c.Downvotes
}
