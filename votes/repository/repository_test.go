// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pitchscout/pitchscout/internal/testutil"
	"github.com/pitchscout/pitchscout/votes/models"
)

const voteLedgerMigrationSQL = `
	CREATE TABLE IF NOT EXISTS reply_votes (
		id UUID PRIMARY KEY,
		target_id UUID NOT NULL,
		owner_user_id UUID NOT NULL,
		vote_type_id SMALLINT NOT NULL CHECK (vote_type_id IN (1, 2)),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_reply_votes_unique_user_target ON reply_votes(target_id, owner_user_id);

	CREATE TABLE IF NOT EXISTS moderation_reports (
		id UUID PRIMARY KEY,
		target_id UUID NOT NULL,
		target_kind VARCHAR(32) NOT NULL,
		reporter_user_id UUID NOT NULL,
		reason TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// TestPostgresVoteRepository_Integration exercises the vote ledger against a
// real PostgreSQL instance, one isolated schema per run.
func TestPostgresVoteRepository_Integration(t *testing.T) {
	suite := testutil.Setup(t)
	client := testutil.IsolatedClient(t, suite.Config())

	ctx := context.Background()
	_, err := client.DB().ExecContext(ctx, voteLedgerMigrationSQL)
	require.NoError(t, err, "Failed to apply vote ledger migration")

	repo := NewPostgresVoteRepository(client, ReplyVotesTable)

	targetID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	t.Run("First vote inserts", func(t *testing.T) {
		vote := &models.TargetVote{
			ID:          uuid.Must(uuid.NewV4()),
			TargetID:    targetID,
			OwnerUserID: userID,
			VoteTypeID:  models.VoteTypeUp,
		}

		created, previousType, err := repo.Upsert(ctx, vote)
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, 0, previousType)

		fetched, err := repo.FindByUserAndTarget(ctx, userID, targetID)
		require.NoError(t, err)
		require.Equal(t, models.VoteTypeUp, fetched.VoteTypeID)
	})

	t.Run("Opposite type updates in place", func(t *testing.T) {
		vote := &models.TargetVote{
			ID:          uuid.Must(uuid.NewV4()),
			TargetID:    targetID,
			OwnerUserID: userID,
			VoteTypeID:  models.VoteTypeDown,
		}

		created, previousType, err := repo.Upsert(ctx, vote)
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, models.VoteTypeUp, previousType)

		fetched, err := repo.FindByUserAndTarget(ctx, userID, targetID)
		require.NoError(t, err)
		require.Equal(t, models.VoteTypeDown, fetched.VoteTypeID)
	})

	t.Run("Delete removes and reports previous type", func(t *testing.T) {
		deleted, previousType, err := repo.Delete(ctx, targetID, userID)
		require.NoError(t, err)
		require.True(t, deleted)
		require.Equal(t, models.VoteTypeDown, previousType)

		_, err = repo.FindByUserAndTarget(ctx, userID, targetID)
		require.ErrorIs(t, err, ErrVoteNotFound)
	})

	t.Run("Delete with no vote is a no-op", func(t *testing.T) {
		deleted, previousType, err := repo.Delete(ctx, targetID, userID)
		require.NoError(t, err)
		require.False(t, deleted)
		require.Equal(t, 0, previousType)
	})

	t.Run("Reports are appended", func(t *testing.T) {
		reports := NewPostgresReportRepository(client)
		report := &models.Report{
			ID:             uuid.Must(uuid.NewV4()),
			TargetID:       targetID,
			TargetKind:     models.TargetKindReply,
			ReporterUserID: userID,
			Reason:         "abusive language",
		}
		require.NoError(t, reports.CreateReport(ctx, report))
	})
}
