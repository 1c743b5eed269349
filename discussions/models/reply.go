// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Reply is a post within a discussion thread. ParentReplyID is nil for
// top-level replies and set for nested ones. Upvotes and Downvotes are
// denormalized counters maintained in the same transaction as the vote rows.
type Reply struct {
	ID            uuid.UUID  `db:"id" json:"objectId"`
	ThreadID      uuid.UUID  `db:"thread_id" json:"threadId"`
	ParentReplyID *uuid.UUID `db:"parent_reply_id" json:"parentReplyId,omitempty"`
	OwnerUserID   uuid.UUID  `db:"owner_user_id" json:"ownerUserId"`
	Content       string     `db:"content" json:"content"`
	Upvotes       int64      `db:"upvotes" json:"upvotes"`
	Downvotes     int64      `db:"downvotes" json:"downvotes"`
	IsFeatured    bool       `db:"is_featured" json:"isFeatured"`
	IsDeleted     bool       `db:"is_deleted" json:"isDeleted"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// NetScore is derived from the two counters and never stored separately.
func (r *Reply) NetScore() int64 {
	return r.Upvotes - r.Downvotes
}
