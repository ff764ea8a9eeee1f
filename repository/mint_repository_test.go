package repository

import (
	"context"
	"testing"

	"sigil/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintRepository_CreateAndCount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewMintRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	mint := testutil.CreateTestMint(1, "mint-addr-1", "wallet-a")
	require.NoError(t, repo.Create(ctx, mint))
	assert.False(t, mint.MintedAt.IsZero())

	require.NoError(t, repo.Create(ctx, testutil.CreateTestMint(2, "mint-addr-2", "wallet-b")))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	t.Run("duplicate token ID rejected", func(t *testing.T) {
		err := repo.Create(ctx, testutil.CreateTestMint(1, "mint-addr-3", "wallet-c"))
		assert.ErrorContains(t, err, "already registered")
	})
}

func TestMintRepository_OwnerHoldsToken(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewMintRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestMint(1, "mint-addr-1", "wallet-a")))

	holds, err := repo.OwnerHoldsToken(ctx, "wallet-a")
	require.NoError(t, err)
	assert.True(t, holds)

	holds, err = repo.OwnerHoldsToken(ctx, "wallet-b")
	require.NoError(t, err)
	assert.False(t, holds)
}

func TestMintRepository_AnyRegistered(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewMintRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestMint(1, "mint-addr-1", "wallet-a")))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestMint(2, "mint-addr-2", "wallet-b")))

	// One registered mint among unrelated ones is enough
	registered, err := repo.AnyRegistered(ctx, []string{"other-mint", "mint-addr-2"})
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = repo.AnyRegistered(ctx, []string{"other-mint-1", "other-mint-2"})
	require.NoError(t, err)
	assert.False(t, registered)

	registered, err = repo.AnyRegistered(ctx, nil)
	require.NoError(t, err)
	assert.False(t, registered)
}
