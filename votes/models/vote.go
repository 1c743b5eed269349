// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// TargetVote represents a registered user's vote on a votable target
// (discussion reply or player comment). At most one row exists per
// (target_id, owner_user_id) pair.
type TargetVote struct {
	ID          uuid.UUID `db:"id" json:"objectId"`
	TargetID    uuid.UUID `db:"target_id" json:"targetId"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	VoteTypeID  int       `db:"vote_type_id" json:"typeId"` // 1=UpVote, 2=DownVote
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// VoteType constants
const (
	VoteTypeUp   = 1 // UpVote (+1 to upvotes)
	VoteTypeDown = 2 // DownVote (+1 to downvotes)
)

// IsValidVoteType checks if the vote type is valid
func IsValidVoteType(voteTypeID int) bool {
	return voteTypeID == VoteTypeUp || voteTypeID == VoteTypeDown
}

// VoteOutcome describes what a vote call did to the ledger.
type VoteOutcome string

const (
	// OutcomeCast means no prior vote existed and one was created.
	OutcomeCast VoteOutcome = "cast"
	// OutcomeRetracted means the same vote type existed and was removed.
	OutcomeRetracted VoteOutcome = "retracted"
	// OutcomeToggled means the opposite vote type existed and was replaced.
	OutcomeToggled VoteOutcome = "toggled"
)

// VoteResult is returned to callers after a vote transition, carrying the
// fresh counters so clients never have to guess.
type VoteResult struct {
	Outcome   VoteOutcome `json:"outcome"`
	Upvotes   int64       `json:"upvotes"`
	Downvotes int64       `json:"downvotes"`
	NetScore  int64       `json:"netScore"`
}

// Report is a moderation flag raised against a votable target. Recording a
// report never mutates vote counters.
type Report struct {
	ID             uuid.UUID `db:"id" json:"objectId"`
	TargetID       uuid.UUID `db:"target_id" json:"targetId"`
	TargetKind     string    `db:"target_kind" json:"targetKind"`
	ReporterUserID uuid.UUID `db:"reporter_user_id" json:"reporterUserId"`
	Reason         string    `db:"reason" json:"reason"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// Target kinds for moderation reports
const (
	TargetKindReply   = "reply"
	TargetKindComment = "player_comment"
)
