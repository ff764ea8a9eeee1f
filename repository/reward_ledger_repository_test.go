package repository

import (
	"context"
	"testing"

	"sigil/domain/entities"
	"sigil/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardLedgerRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewRewardLedgerRepository(testDB.DB)
	ctx := context.Background()

	record := testutil.CreateTestRewardRecord(100, "wallet-a", 666_666)
	require.NoError(t, repo.Record(ctx, record))
	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	t.Run("nil signature allowed for pending retries", func(t *testing.T) {
		pending := &entities.RewardRecord{
			EpochDay:       101,
			Wallet:         "wallet-a",
			AmountLamports: 1000,
			Status:         entities.RewardStatusPending,
		}
		require.NoError(t, repo.Record(ctx, pending))
		assert.NotZero(t, pending.ID)
	})
}

func TestRewardLedgerRepository_PaidByDay(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewRewardLedgerRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, testutil.CreateTestRewardRecord(200, "wallet-a", 400_000)))
	require.NoError(t, repo.Record(ctx, testutil.CreateTestRewardRecord(200, "wallet-a", 100_000)))
	require.NoError(t, repo.Record(ctx, testutil.CreateTestRewardRecord(201, "wallet-a", 50_000)))

	pending := testutil.CreateTestRewardRecord(202, "wallet-a", 25_000)
	pending.Status = entities.RewardStatusPending
	require.NoError(t, repo.Record(ctx, pending))

	failed := testutil.CreateTestRewardRecord(200, "wallet-a", 999_999)
	failed.Status = entities.RewardStatusFailed
	require.NoError(t, repo.Record(ctx, failed))

	require.NoError(t, repo.Record(ctx, testutil.CreateTestRewardRecord(200, "wallet-b", 77_000)))

	paid, err := repo.PaidByDay(ctx, "wallet-a")
	require.NoError(t, err)

	assert.Equal(t, int64(500_000), paid[200], "sent rows sum, failed row excluded")
	assert.Equal(t, int64(50_000), paid[201])
	assert.Equal(t, int64(25_000), paid[202], "pending rows count as paid")
	assert.NotContains(t, paid, int64(203))
}

func TestRewardLedgerRepository_UpdateStatus(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewRewardLedgerRepository(testDB.DB)
	ctx := context.Background()

	record := testutil.CreateTestRewardRecord(400, "wallet-a", 100)
	record.Status = entities.RewardStatusPending
	require.NoError(t, repo.Record(ctx, record))

	paid, err := repo.PaidByDay(ctx, "wallet-a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), paid[400])

	// Marking the transfer failed releases the amount for re-claiming
	require.NoError(t, repo.UpdateStatus(ctx, record.ID, entities.RewardStatusFailed))

	paid, err = repo.PaidByDay(ctx, "wallet-a")
	require.NoError(t, err)
	assert.NotContains(t, paid, int64(400))

	t.Run("unknown record", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, 9999, entities.RewardStatusFailed)
		assert.Error(t, err)
	})
}
