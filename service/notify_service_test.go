package service

import (
	"context"
	"testing"

	"sigil/domain/entities"
	"sigil/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotifyFixture() (*MockUnitOfWorkFactory, *MockCheckInRepository, *MockDayClaimRepository, *MockMintRepository, *MockBroadcaster) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockCheckIns := new(MockCheckInRepository)
	mockDayClaims := new(MockDayClaimRepository)
	mockMints := new(MockMintRepository)
	mockBroadcaster := new(MockBroadcaster)

	mockUoW.SetRepositories(mockCheckIns, mockDayClaims, nil, mockMints, nil)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", context.Background()).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster
}

func allPlatformsOK() *interfaces.BroadcastReport {
	return &interfaces.BroadcastReport{
		Platforms: map[string]bool{"farcaster": true, "telegram": true, "bluesky": true, "discord": true},
		Errors:    map[string]string{},
	}
}

func TestNotifyService_DayFlipAnnouncement(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1
	username := "alice"
	link := "https://example.com"
	claim := &entities.DayClaim{
		EpochDay: yesterday, ClaimerWallet: "claimer",
		IncentiveLamports: 250_000_000, FarcasterUsername: &username, LinkURL: &link,
	}

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(claim, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(claim, nil)
	mockMints.On("Count", ctx).Return(int64(3), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(12), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.MatchedBy(func(text string) bool {
		return len(text) > 0
	}), []string{link}).Return(allPlatformsOK())

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	// 0.25 SOL is a record here but below the announcement floor
	assert.Equal(t, []string{"day_flip"}, report.Posted)
	mockBroadcaster.AssertNumberOfCalls(t, "Broadcast", 1)
}

func TestNotifyService_RecordIncentive(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1
	claim := &entities.DayClaim{
		EpochDay: yesterday, ClaimerWallet: "claimer", IncentiveLamports: 750_000_000,
	}

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(claim, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(claim, nil)
	mockMints.On("Count", ctx).Return(int64(3), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(0), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.Anything, mock.Anything).Return(allPlatformsOK())

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.Contains(t, report.Posted, "day_flip")
	assert.Contains(t, report.Posted, "record_incentive")
}

func TestNotifyService_RecordSetEarlierNotAnnounced(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1
	claim := &entities.DayClaim{EpochDay: yesterday, ClaimerWallet: "claimer", IncentiveLamports: 750_000_000}
	olderRecord := &entities.DayClaim{EpochDay: yesterday - 30, IncentiveLamports: 900_000_000}

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(claim, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(olderRecord, nil)
	mockMints.On("Count", ctx).Return(int64(3), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(0), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.Anything, mock.Anything).Return(allPlatformsOK())

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.NotContains(t, report.Posted, "record_incentive")
}

func TestNotifyService_MintMilestone(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(nil, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(nil, nil)
	mockMints.On("Count", ctx).Return(int64(52), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(0), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.Anything, mock.Anything).Return(allPlatformsOK())

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"milestone_50"}, report.Posted)
	mockBroadcaster.AssertNumberOfCalls(t, "Broadcast", 1)
}

func TestNotifyService_MilestoneWindowPassed(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(nil, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(nil, nil)
	// 58 mints: past the 50 window, short of 100
	mockMints.On("Count", ctx).Return(int64(58), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(0), nil)

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.Empty(t, report.Posted)
	mockBroadcaster.AssertNotCalled(t, "Broadcast")
}

func TestNotifyService_HighCheckIns(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(nil, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(nil, nil)
	mockMints.On("Count", ctx).Return(int64(3), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(61), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.Anything, mock.Anything).Return(allPlatformsOK())

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"high_checkins"}, report.Posted)
}

func TestNotifyService_PartialPlatformFailureStillPosted(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockCheckIns, mockDayClaims, mockMints, mockBroadcaster := newNotifyFixture()

	yesterday := entities.CurrentEpochDay() - 1
	claim := &entities.DayClaim{EpochDay: yesterday, ClaimerWallet: "claimer", IncentiveLamports: 100}

	mockDayClaims.On("GetByDay", ctx, yesterday).Return(claim, nil)
	mockDayClaims.On("GetLargestIncentive", ctx).Return(claim, nil)
	mockMints.On("Count", ctx).Return(int64(3), nil)
	mockCheckIns.On("CountForDay", ctx, yesterday).Return(int64(0), nil)

	mockBroadcaster.On("Broadcast", ctx, mock.Anything, mock.Anything).Return(&interfaces.BroadcastReport{
		Platforms: map[string]bool{"farcaster": true, "telegram": false},
		Errors:    map[string]string{"telegram": "api timeout"},
	})

	service := NewNotifyService(mockFactory, mockBroadcaster, "sigil.bond")
	report, err := service.Notify(ctx)

	require.NoError(t, err)
	assert.Contains(t, report.Posted, "day_flip")
	assert.Equal(t, "api timeout", report.Errors["day_flip"]["telegram"])
}
