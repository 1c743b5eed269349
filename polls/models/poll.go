// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Poll type constants. A closed enumeration; ValidatePollType rejects
// anything else at the service boundary.
const (
	PollTypeSingleChoice = "single_choice"
	PollTypeMultiChoice  = "multi_choice"
	PollTypeYesNo        = "yes_no"
)

// IsValidPollType checks if the poll type is one of the known values
func IsValidPollType(pollType string) bool {
	switch pollType {
	case PollTypeSingleChoice, PollTypeMultiChoice, PollTypeYesNo:
		return true
	}
	return false
}

// Poll represents a community poll, optionally scoped to a discussion thread
// or a player profile. TotalVotes is a denormalized counter maintained in the
// same transaction as the vote rows.
type Poll struct {
	ID           uuid.UUID  `db:"id" json:"objectId"`
	Question     string     `db:"question" json:"question"`
	Description  string     `db:"description" json:"description,omitempty"`
	PollType     string     `db:"poll_type" json:"pollType"`
	OwnerUserID  uuid.UUID  `db:"owner_user_id" json:"ownerUserId"`
	ThreadID     *uuid.UUID `db:"thread_id" json:"threadId,omitempty"`
	PlayerID     *uuid.UUID `db:"player_id" json:"playerId,omitempty"`
	IsAnonymous  bool       `db:"is_anonymous" json:"isAnonymous"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
	TotalVotes   int64      `db:"total_votes" json:"totalVotes"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// IsOpenAt reports whether the poll accepts votes at the given instant.
// Expiry is evaluated lazily at vote time; an expired poll is closed for
// voting even while is_active is still true in storage.
func (p *Poll) IsOpenAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ExpiresAt != nil && !now.Before(*p.ExpiresAt) {
		return false
	}
	return true
}

// PollOption is one answer of a poll. DisplayOrder preserves the author's
// input order; VoteCount is denormalized like Poll.TotalVotes.
type PollOption struct {
	ID           uuid.UUID `db:"id" json:"objectId"`
	PollID       uuid.UUID `db:"poll_id" json:"pollId"`
	Text         string    `db:"text" json:"text"`
	VoteCount    int64     `db:"vote_count" json:"voteCount"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PollVote is a single vote event. VoterKey is the identity key
// ("user:<uuid>" or "ip:<addr>") that the storage-level uniqueness
// constraint deduplicates on; OwnerUserID is nil for anonymous votes.
// Vote rows are append-only and never mutated.
type PollVote struct {
	ID          uuid.UUID  `db:"id" json:"objectId"`
	PollID      uuid.UUID  `db:"poll_id" json:"pollId"`
	OptionID    uuid.UUID  `db:"option_id" json:"optionId"`
	OwnerUserID *uuid.UUID `db:"owner_user_id" json:"ownerUserId,omitempty"`
	VoterKey    string     `db:"voter_key" json:"-"`
	IPAddress   string     `db:"ip_address" json:"-"`
	UserAgent   string     `db:"user_agent" json:"-"`
	IsAnonymous bool       `db:"is_anonymous" json:"isAnonymous"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

// OptionResult is one row of a poll's computed results
type OptionResult struct {
	OptionID   uuid.UUID `json:"optionId"`
	Text       string    `json:"text"`
	VoteCount  int64     `json:"voteCount"`
	Percentage float64   `json:"percentage"`
}

// PollResults is the live result view of a poll. Percentages are computed
// fresh from current counters on every read and never cached.
type PollResults struct {
	PollID     uuid.UUID      `json:"pollId"`
	Question   string         `json:"question"`
	TotalVotes int64          `json:"totalVotes"`
	IsOpen     bool           `json:"isOpen"`
	Options    []OptionResult `json:"options"`
}
