package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sigil/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedClaimMessage(today int64, at time.Time) string {
	return fmt.Sprintf("Sigil claim rewards: %d:%d", today, at.UnixMilli())
}

func newRewardsFixture() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockCheckInRepository, *MockDayClaimRepository, *MockRewardLedgerRepository, *MockChainClient) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockCheckIns := new(MockCheckInRepository)
	mockDayClaims := new(MockDayClaimRepository)
	mockLedger := new(MockRewardLedgerRepository)
	mockChain := new(MockChainClient)

	mockUoW.SetRepositories(mockCheckIns, mockDayClaims, mockLedger, nil, nil)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", context.Background()).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockUoW, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain
}

func TestRewardsService_Breakdown(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	today := entities.CurrentEpochDay()
	dayA := today - 10
	dayB := today - 5
	wallet := "wallet-a"

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: dayA, Wallet: wallet, Weight: 2},
		{EpochDay: dayB, Wallet: wallet, Weight: 1},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{dayA, dayB}).Return([]*entities.DayClaim{
		{EpochDay: dayA, IncentiveLamports: 1_000_000, TotalWeight: 3},
		{EpochDay: dayB, IncentiveLamports: 600_000, TotalWeight: 4},
	}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{dayA: 666_666}, nil)

	service := NewRewardsService(mockFactory, mockChain)
	breakdown, err := service.Breakdown(ctx, wallet)

	require.NoError(t, err)
	require.Len(t, breakdown.Days, 2)

	// Day A: 2/3 of 1,000,000 fully paid out; Day B: 1/4 of 600,000 pending
	assert.Equal(t, int64(666_666), breakdown.Days[0].EarnedLamports)
	assert.Equal(t, int64(0), breakdown.Days[0].PendingLamports)
	assert.Equal(t, int64(150_000), breakdown.Days[1].PendingLamports)

	assert.Equal(t, int64(816_666), breakdown.TotalEarnedLamports)
	assert.Equal(t, int64(666_666), breakdown.TotalPaidLamports)
	assert.Equal(t, int64(150_000), breakdown.TotalPendingLamports)
	assert.Equal(t, int64(1), breakdown.BonusDays)
	assert.Nil(t, breakdown.TodayEstimate)
}

func TestRewardsService_Breakdown_TodayEstimate(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	today := entities.CurrentEpochDay()
	wallet := "wallet-a"

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: today, Wallet: wallet, Weight: 2},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{today}).Return([]*entities.DayClaim{}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{}, nil)

	mockDayClaims.On("GetByDay", ctx, today).Return(&entities.DayClaim{
		EpochDay: today, IncentiveLamports: 900_000,
	}, nil)
	mockCheckIns.On("TotalWeightForDay", ctx, today).Return(int64(9), nil)

	service := NewRewardsService(mockFactory, mockChain)
	breakdown, err := service.Breakdown(ctx, wallet)

	require.NoError(t, err)
	require.NotNil(t, breakdown.TodayEstimate)
	assert.Equal(t, int64(200_000), breakdown.TodayEstimate.EstimatedLamports)
	assert.Equal(t, int64(900_000), breakdown.TodayPoolLamports)
	assert.Equal(t, int64(0), breakdown.TotalPendingLamports)
}

func TestRewardsService_Breakdown_NoCheckIns(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, _, mockChain := newRewardsFixture()

	mockCheckIns.On("GetByWallet", ctx, "empty").Return([]*entities.CheckIn{}, nil)

	service := NewRewardsService(mockFactory, mockChain)
	breakdown, err := service.Breakdown(ctx, "empty")

	require.NoError(t, err)
	assert.Empty(t, breakdown.Days)
	assert.Equal(t, int64(0), breakdown.TotalPendingLamports)
	mockDayClaims.AssertNotCalled(t, "GetSettledByDays")
}

func TestRewardsService_ClaimRewards_SingleTransferPerDayLedger(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	wallet, sign := testWallet(t)
	today := entities.CurrentEpochDay()
	dayA := today - 10
	dayB := today - 5
	message := signedClaimMessage(today, time.Now())

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: dayA, Wallet: wallet, Weight: 2},
		{EpochDay: dayB, Wallet: wallet, Weight: 1},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{dayA, dayB}).Return([]*entities.DayClaim{
		{EpochDay: dayA, IncentiveLamports: 1_000_000, TotalWeight: 3},
		{EpochDay: dayB, IncentiveLamports: 600_000, TotalWeight: 4},
	}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{}, nil)

	// One transfer covers both days: 666,666 + 150,000
	mockChain.On("Transfer", ctx, wallet, int64(816_666)).Return("tx-sig", nil)

	mockLedger.On("Record", ctx, mock.MatchedBy(func(r *entities.RewardRecord) bool {
		return r.EpochDay == dayA && r.AmountLamports == 666_666 &&
			r.Status == entities.RewardStatusSent && *r.TxSignature == "tx-sig"
	})).Return(nil)
	mockLedger.On("Record", ctx, mock.MatchedBy(func(r *entities.RewardRecord) bool {
		return r.EpochDay == dayB && r.AmountLamports == 150_000 &&
			r.Status == entities.RewardStatusSent
	})).Return(nil)

	service := NewRewardsService(mockFactory, mockChain)
	result, err := service.ClaimRewards(ctx, wallet, sign(message), message)

	require.NoError(t, err)
	assert.Equal(t, int64(816_666), result.AmountLamports)
	assert.Equal(t, "tx-sig", result.TxSignature)
	assert.Equal(t, []int64{dayA, dayB}, result.Days)

	mockChain.AssertNumberOfCalls(t, "Transfer", 1)
	mockLedger.AssertExpectations(t)
}

func TestRewardsService_ClaimRewards_NothingPending(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	wallet, sign := testWallet(t)
	today := entities.CurrentEpochDay()
	dayA := today - 10
	message := signedClaimMessage(today, time.Now())

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: dayA, Wallet: wallet, Weight: 2},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{dayA}).Return([]*entities.DayClaim{
		{EpochDay: dayA, IncentiveLamports: 1_000_000, TotalWeight: 3},
	}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{dayA: 666_666}, nil)

	service := NewRewardsService(mockFactory, mockChain)
	_, err := service.ClaimRewards(ctx, wallet, sign(message), message)

	assert.ErrorIs(t, err, entities.ErrNoPendingRewards)
	mockChain.AssertNotCalled(t, "Transfer")
}

func TestRewardsService_ClaimRewards_UnconfirmedRecordsPending(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	wallet, sign := testWallet(t)
	today := entities.CurrentEpochDay()
	dayA := today - 10
	message := signedClaimMessage(today, time.Now())

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: dayA, Wallet: wallet, Weight: 2},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{dayA}).Return([]*entities.DayClaim{
		{EpochDay: dayA, IncentiveLamports: 1_000_000, TotalWeight: 3},
	}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{}, nil)

	// Transaction submitted but the confirmation poll timed out
	mockChain.On("Transfer", ctx, wallet, int64(666_666)).Return("tx-sig", errors.New("timed out waiting for confirmation"))

	mockLedger.On("Record", ctx, mock.MatchedBy(func(r *entities.RewardRecord) bool {
		return r.Status == entities.RewardStatusPending && *r.TxSignature == "tx-sig"
	})).Return(nil)

	service := NewRewardsService(mockFactory, mockChain)
	result, err := service.ClaimRewards(ctx, wallet, sign(message), message)

	require.NoError(t, err)
	assert.Equal(t, "tx-sig", result.TxSignature)
	mockLedger.AssertExpectations(t)
}

func TestRewardsService_ClaimRewards_SendFailure(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockCheckIns, mockDayClaims, mockLedger, mockChain := newRewardsFixture()

	wallet, sign := testWallet(t)
	today := entities.CurrentEpochDay()
	dayA := today - 10
	message := signedClaimMessage(today, time.Now())

	mockCheckIns.On("GetByWallet", ctx, wallet).Return([]*entities.CheckIn{
		{EpochDay: dayA, Wallet: wallet, Weight: 2},
	}, nil)
	mockDayClaims.On("GetSettledByDays", ctx, []int64{dayA}).Return([]*entities.DayClaim{
		{EpochDay: dayA, IncentiveLamports: 1_000_000, TotalWeight: 3},
	}, nil)
	mockLedger.On("PaidByDay", ctx, wallet).Return(map[int64]int64{}, nil)

	// Never submitted: nothing must reach the ledger
	mockChain.On("Transfer", ctx, wallet, int64(666_666)).Return("", errors.New("rpc sendTransaction failed"))

	service := NewRewardsService(mockFactory, mockChain)
	_, err := service.ClaimRewards(ctx, wallet, sign(message), message)

	assert.Error(t, err)
	mockLedger.AssertNotCalled(t, "Record")
}
