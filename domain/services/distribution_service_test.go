package services

import (
	"testing"

	"sigil/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionService_EarnedShare(t *testing.T) {
	s := NewDistributionService()

	tests := []struct {
		name        string
		weight      int64
		totalWeight int64
		incentive   int64
		expected    int64
	}{
		{"bonus weight two of three", 2, 3, 1_000_000, 666_666},
		{"base weight one of three", 1, 3, 1_000_000, 333_333},
		{"sole participant", 2, 2, 1_000_000, 1_000_000},
		{"zero incentive", 2, 3, 0, 0},
		{"zero total weight", 2, 0, 1_000_000, 0},
		{"indivisible pool floors", 1, 3, 100, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.EarnedShare(tt.weight, tt.totalWeight, tt.incentive))
		})
	}
}

func TestDistributionService_EarnedShare_SumNeverExceedsPool(t *testing.T) {
	s := NewDistributionService()

	// Shares are floored per wallet, so their sum can fall short of the
	// pool by dust but must never exceed it.
	pools := []int64{1, 99, 1_000_000, 999_999_999}
	weightSets := [][]int64{
		{2, 1},
		{2, 2, 2, 1, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1},
	}

	for _, pool := range pools {
		for _, weights := range weightSets {
			var totalWeight, sum int64
			for _, w := range weights {
				totalWeight += w
			}
			for _, w := range weights {
				sum += s.EarnedShare(w, totalWeight, pool)
			}
			assert.LessOrEqual(t, sum, pool, "pool %d weights %v", pool, weights)
		}
	}
}

func TestDistributionService_Entitlement(t *testing.T) {
	s := NewDistributionService()

	checkIn := &entities.CheckIn{EpochDay: 100, Wallet: "wallet-a", Weight: 2}
	claim := &entities.DayClaim{EpochDay: 100, IncentiveLamports: 1_000_000, TotalWeight: 3}

	entitlement, err := s.Entitlement(checkIn, claim, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(100), entitlement.EpochDay)
	assert.Equal(t, int64(666_666), entitlement.EarnedLamports)
	assert.Equal(t, int64(666_666), entitlement.PendingLamports)
	assert.Equal(t, int64(0), entitlement.PaidLamports)
}

func TestDistributionService_Entitlement_NetsPriorPayouts(t *testing.T) {
	s := NewDistributionService()

	checkIn := &entities.CheckIn{EpochDay: 100, Weight: 2}
	claim := &entities.DayClaim{EpochDay: 100, IncentiveLamports: 1_000_000, TotalWeight: 3}

	entitlement, err := s.Entitlement(checkIn, claim, 600_000)
	require.NoError(t, err)
	assert.Equal(t, int64(66_666), entitlement.PendingLamports)
}

func TestDistributionService_Entitlement_PaidExceedsEarned(t *testing.T) {
	s := NewDistributionService()

	checkIn := &entities.CheckIn{EpochDay: 100, Weight: 1}
	claim := &entities.DayClaim{EpochDay: 100, IncentiveLamports: 1_000_000, TotalWeight: 3}

	// A prior overpayment must clamp pending to zero, never go negative.
	entitlement, err := s.Entitlement(checkIn, claim, 500_000)
	require.NoError(t, err)
	assert.Equal(t, int64(333_333), entitlement.EarnedLamports)
	assert.Equal(t, int64(0), entitlement.PendingLamports)
}

func TestDistributionService_Entitlement_UnsettledDay(t *testing.T) {
	s := NewDistributionService()

	checkIn := &entities.CheckIn{EpochDay: 100, Weight: 2}
	claim := &entities.DayClaim{EpochDay: 100, IncentiveLamports: 1_000_000, TotalWeight: 0}

	_, err := s.Entitlement(checkIn, claim, 0)
	assert.ErrorIs(t, err, entities.ErrDayNotSettled)
}

func TestDistributionService_Estimate(t *testing.T) {
	s := NewDistributionService()

	checkIn := &entities.CheckIn{EpochDay: 200, Weight: 2}
	claim := &entities.DayClaim{EpochDay: 200, IncentiveLamports: 900_000}

	estimate := s.Estimate(checkIn, claim, 9)
	require.NotNil(t, estimate)
	assert.Equal(t, int64(200_000), estimate.EstimatedLamports)
	assert.Equal(t, int64(9), estimate.CurrentTotalWeight)
}

func TestDistributionService_Estimate_NoEntry(t *testing.T) {
	s := NewDistributionService()

	claim := &entities.DayClaim{EpochDay: 200, IncentiveLamports: 900_000}

	assert.Nil(t, s.Estimate(nil, claim, 9))
	assert.Nil(t, s.Estimate(&entities.CheckIn{Weight: 1}, claim, 0))
}
