// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pitchscout/pitchscout/internal/testutil"
	"github.com/pitchscout/pitchscout/polls/models"
)

const pollsMigrationSQL = `
	CREATE TABLE IF NOT EXISTS polls (
		id UUID PRIMARY KEY,
		question TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		poll_type VARCHAR(32) NOT NULL,
		owner_user_id UUID NOT NULL,
		thread_id UUID,
		player_id UUID,
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ,
		total_votes BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS poll_options (
		id UUID PRIMARY KEY,
		poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		vote_count BIGINT NOT NULL DEFAULT 0,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS poll_votes (
		id UUID PRIMARY KEY,
		poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		option_id UUID NOT NULL REFERENCES poll_options(id) ON DELETE CASCADE,
		owner_user_id UUID,
		voter_key VARCHAR(128) NOT NULL,
		ip_address VARCHAR(64) NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_poll_votes_unique_identity ON poll_votes(poll_id, voter_key);
	CREATE INDEX IF NOT EXISTS idx_poll_votes_poll_id ON poll_votes(poll_id);
	CREATE INDEX IF NOT EXISTS idx_poll_options_poll_id ON poll_options(poll_id);
`

// TestPostgresPollRepository_Integration exercises the repository layer
// against a real PostgreSQL instance, one isolated schema per run.
func TestPostgresPollRepository_Integration(t *testing.T) {
	suite := testutil.Setup(t)
	client := testutil.IsolatedClient(t, suite.Config())

	ctx := context.Background()
	_, err := client.DB().ExecContext(ctx, pollsMigrationSQL)
	require.NoError(t, err, "Failed to apply polls migration")

	repo := NewPostgresPollRepository(client)

	authorID := uuid.Must(uuid.NewV4())
	pollID := uuid.Must(uuid.NewV4())
	optionA := uuid.Must(uuid.NewV4())
	optionB := uuid.Must(uuid.NewV4())

	t.Run("CreatePoll persists poll and options atomically", func(t *testing.T) {
		poll := &models.Poll{
			ID:          pollID,
			Question:    "Best academy prospect this season?",
			PollType:    models.PollTypeSingleChoice,
			OwnerUserID: authorID,
			IsActive:    true,
		}
		options := []*models.PollOption{
			{ID: optionA, PollID: pollID, Text: "Prospect A", DisplayOrder: 0},
			{ID: optionB, PollID: pollID, Text: "Prospect B", DisplayOrder: 1},
		}

		require.NoError(t, repo.CreatePoll(ctx, poll, options))

		fetched, err := repo.FindByID(ctx, pollID)
		require.NoError(t, err)
		require.Equal(t, poll.Question, fetched.Question)
		require.True(t, fetched.IsActive)

		fetchedOptions, err := repo.FindOptions(ctx, pollID)
		require.NoError(t, err)
		require.Len(t, fetchedOptions, 2)
		require.Equal(t, "Prospect A", fetchedOptions[0].Text)
		require.Equal(t, "Prospect B", fetchedOptions[1].Text)
	})

	t.Run("InsertVote enforces one vote per identity", func(t *testing.T) {
		voterKey := "user:" + uuid.Must(uuid.NewV4()).String()

		first := &models.PollVote{
			ID:       uuid.Must(uuid.NewV4()),
			PollID:   pollID,
			OptionID: optionA,
			VoterKey: voterKey,
		}
		created, err := repo.InsertVote(ctx, first)
		require.NoError(t, err)
		require.True(t, created, "first vote should insert")

		// Same identity, different option, different row ID: the
		// constraint must still reject it.
		second := &models.PollVote{
			ID:       uuid.Must(uuid.NewV4()),
			PollID:   pollID,
			OptionID: optionB,
			VoterKey: voterKey,
		}
		created, err = repo.InsertVote(ctx, second)
		require.NoError(t, err)
		require.False(t, created, "duplicate identity should not insert")

		voted, err := repo.HasVoted(ctx, pollID, voterKey)
		require.NoError(t, err)
		require.True(t, voted)
	})

	t.Run("Anonymous identities dedup by IP key", func(t *testing.T) {
		vote := &models.PollVote{
			ID:          uuid.Must(uuid.NewV4()),
			PollID:      pollID,
			OptionID:    optionA,
			VoterKey:    "ip:203.0.113.20",
			IPAddress:   "203.0.113.20",
			UserAgent:   "integration-test",
			IsAnonymous: true,
		}
		created, err := repo.InsertVote(ctx, vote)
		require.NoError(t, err)
		require.True(t, created)

		retry := *vote
		retry.ID = uuid.Must(uuid.NewV4())
		created, err = repo.InsertVote(ctx, &retry)
		require.NoError(t, err)
		require.False(t, created)

		other := *vote
		other.ID = uuid.Must(uuid.NewV4())
		other.VoterKey = "ip:198.51.100.7"
		other.IPAddress = "198.51.100.7"
		created, err = repo.InsertVote(ctx, &other)
		require.NoError(t, err)
		require.True(t, created)
	})

	t.Run("IncrementCounters keeps option and poll totals in step", func(t *testing.T) {
		before, err := repo.FindByID(ctx, pollID)
		require.NoError(t, err)

		require.NoError(t, repo.IncrementCounters(ctx, pollID, optionA, 1))
		require.NoError(t, repo.IncrementCounters(ctx, pollID, optionA, 1))
		require.NoError(t, repo.IncrementCounters(ctx, pollID, optionB, 1))

		after, err := repo.FindByID(ctx, pollID)
		require.NoError(t, err)
		require.Equal(t, before.TotalVotes+3, after.TotalVotes)

		options, err := repo.FindOptions(ctx, pollID)
		require.NoError(t, err)
		var optionSum int64
		for _, option := range options {
			optionSum += option.VoteCount
		}
		require.Equal(t, after.TotalVotes, optionSum, "sum of option counts must equal poll total")
	})

	t.Run("Vote row and counters commit together", func(t *testing.T) {
		voterKey := "user:" + uuid.Must(uuid.NewV4()).String()

		err := repo.WithTransaction(ctx, func(txCtx context.Context) error {
			vote := &models.PollVote{
				ID:       uuid.Must(uuid.NewV4()),
				PollID:   pollID,
				OptionID: optionB,
				VoterKey: voterKey,
			}
			created, err := repo.InsertVote(txCtx, vote)
			require.NoError(t, err)
			require.True(t, created)
			return repo.IncrementCounters(txCtx, pollID, optionB, 1)
		})
		require.NoError(t, err)

		voted, err := repo.HasVoted(ctx, pollID, voterKey)
		require.NoError(t, err)
		require.True(t, voted)
	})

	t.Run("Close is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Close(ctx, pollID))
		require.NoError(t, repo.Close(ctx, pollID))

		fetched, err := repo.FindByID(ctx, pollID)
		require.NoError(t, err)
		require.False(t, fetched.IsActive)
	})

	t.Run("List filters by owner and activity", func(t *testing.T) {
		otherPollID := uuid.Must(uuid.NewV4())
		otherPoll := &models.Poll{
			ID:          otherPollID,
			Question:    "Sign a veteran keeper?",
			PollType:    models.PollTypeYesNo,
			OwnerUserID: authorID,
			IsActive:    true,
			CreatedAt:   time.Now().Add(time.Second),
		}
		otherOptions := []*models.PollOption{
			{ID: uuid.Must(uuid.NewV4()), PollID: otherPollID, Text: "Yes", DisplayOrder: 0},
			{ID: uuid.Must(uuid.NewV4()), PollID: otherPollID, Text: "No", DisplayOrder: 1},
		}
		require.NoError(t, repo.CreatePoll(ctx, otherPoll, otherOptions))

		active, err := repo.List(ctx, ListFilter{OwnerUserID: &authorID, ActiveOnly: true, Limit: 10})
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, otherPollID, active[0].ID)

		all, err := repo.List(ctx, ListFilter{OwnerUserID: &authorID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 2)
	})
}
