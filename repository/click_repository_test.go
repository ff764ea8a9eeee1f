package repository

import (
	"context"
	"testing"

	"sigil/domain/entities"
	"sigil/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewClickRepository(testDB.DB)
	ctx := context.Background()

	referrer := "https://warpcast.com"
	click := &entities.Click{
		EpochDay: 100,
		IPHash:   "a1b2c3",
		Referrer: &referrer,
	}
	require.NoError(t, repo.Record(ctx, click))
	assert.NotZero(t, click.ID)
	assert.False(t, click.ClickedAt.IsZero())

	t.Run("referrer and user agent optional", func(t *testing.T) {
		bare := &entities.Click{EpochDay: 100, IPHash: "d4e5f6"}
		require.NoError(t, repo.Record(ctx, bare))
		assert.NotZero(t, bare.ID)
	})
}

func TestClickRepository_CountByDays(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewClickRepository(testDB.DB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, &entities.Click{EpochDay: 200, IPHash: "h"}))
	}
	require.NoError(t, repo.Record(ctx, &entities.Click{EpochDay: 201, IPHash: "h"}))
	require.NoError(t, repo.Record(ctx, &entities.Click{EpochDay: 999, IPHash: "h"}))

	counts, err := repo.CountByDays(ctx, []int64{200, 201, 202})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[200])
	assert.Equal(t, int64(1), counts[201])
	assert.NotContains(t, counts, int64(202), "days without clicks are absent")
	assert.NotContains(t, counts, int64(999))

	t.Run("empty day list", func(t *testing.T) {
		counts, err := repo.CountByDays(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, counts)
	})
}
