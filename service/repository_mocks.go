package service

import (
	"context"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
	"sigil/repository"

	"github.com/stretchr/testify/mock"
)

// MockCheckInRepository is a mock implementation of CheckInRepository
type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) Record(ctx context.Context, checkIn *entities.CheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockCheckInRepository) GetByDayAndWallet(ctx context.Context, epochDay int64, wallet string) (*entities.CheckIn, error) {
	args := m.Called(ctx, epochDay, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) GetByWallet(ctx context.Context, wallet string) ([]*entities.CheckIn, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) CountForDay(ctx context.Context, epochDay int64) (int64, error) {
	args := m.Called(ctx, epochDay)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckInRepository) TotalWeightForDay(ctx context.Context, epochDay int64) (int64, error) {
	args := m.Called(ctx, epochDay)
	return args.Get(0).(int64), args.Error(1)
}

// MockDayClaimRepository is a mock implementation of DayClaimRepository
type MockDayClaimRepository struct {
	mock.Mock
}

func (m *MockDayClaimRepository) GetByDay(ctx context.Context, epochDay int64) (*entities.DayClaim, error) {
	args := m.Called(ctx, epochDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) GetByClaimer(ctx context.Context, claimerWallet string) ([]*entities.DayClaim, error) {
	args := m.Called(ctx, claimerWallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) GetRange(ctx context.Context, fromDay, toDay int64) ([]*entities.DayClaim, error) {
	args := m.Called(ctx, fromDay, toDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) GetSettledByDays(ctx context.Context, epochDays []int64) ([]*entities.DayClaim, error) {
	args := m.Called(ctx, epochDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) GetUnsettledBefore(ctx context.Context, epochDay int64) ([]*entities.DayClaim, error) {
	args := m.Called(ctx, epochDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) GetLargestIncentive(ctx context.Context) (*entities.DayClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DayClaim), args.Error(1)
}

func (m *MockDayClaimRepository) Upsert(ctx context.Context, claim *entities.DayClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockDayClaimRepository) FreezeTotalWeight(ctx context.Context, epochDay, totalWeight int64) (bool, error) {
	args := m.Called(ctx, epochDay, totalWeight)
	return args.Bool(0), args.Error(1)
}

func (m *MockDayClaimRepository) SetModerationStatus(ctx context.Context, epochDay int64, status entities.ModerationStatus) error {
	args := m.Called(ctx, epochDay, status)
	return args.Error(0)
}

// MockRewardLedgerRepository is a mock implementation of RewardLedgerRepository
type MockRewardLedgerRepository struct {
	mock.Mock
}

func (m *MockRewardLedgerRepository) Record(ctx context.Context, record *entities.RewardRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRewardLedgerRepository) PaidByDay(ctx context.Context, wallet string) (map[int64]int64, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockRewardLedgerRepository) UpdateStatus(ctx context.Context, id int64, status entities.RewardStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockMintRepository is a mock implementation of MintRepository
type MockMintRepository struct {
	mock.Mock
}

func (m *MockMintRepository) Create(ctx context.Context, mint *entities.NFTMint) error {
	args := m.Called(ctx, mint)
	return args.Error(0)
}

func (m *MockMintRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMintRepository) AnyRegistered(ctx context.Context, mintAddresses []string) (bool, error) {
	args := m.Called(ctx, mintAddresses)
	return args.Bool(0), args.Error(1)
}

func (m *MockMintRepository) OwnerHoldsToken(ctx context.Context, wallet string) (bool, error) {
	args := m.Called(ctx, wallet)
	return args.Bool(0), args.Error(1)
}

// MockClickRepository is a mock implementation of ClickRepository
type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) Record(ctx context.Context, click *entities.Click) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockClickRepository) CountByDays(ctx context.Context, epochDays []int64) (map[int64]int64, error) {
	args := m.Called(ctx, epochDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

// MockUnitOfWork is a mock implementation of repository.UnitOfWork. The
// repositories it hands out are set directly via SetRepositories rather
// than through expectations.
type MockUnitOfWork struct {
	mock.Mock

	checkInRepo      interfaces.CheckInRepository
	dayClaimRepo     interfaces.DayClaimRepository
	rewardLedgerRepo interfaces.RewardLedgerRepository
	mintRepo         interfaces.MintRepository
	clickRepo        interfaces.ClickRepository
}

// SetRepositories configures which repositories the unit of work returns.
func (m *MockUnitOfWork) SetRepositories(
	checkIns interfaces.CheckInRepository,
	dayClaims interfaces.DayClaimRepository,
	rewardLedger interfaces.RewardLedgerRepository,
	mints interfaces.MintRepository,
	clicks interfaces.ClickRepository,
) {
	m.checkInRepo = checkIns
	m.dayClaimRepo = dayClaims
	m.rewardLedgerRepo = rewardLedger
	m.mintRepo = mints
	m.clickRepo = clicks
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) CheckIns() interfaces.CheckInRepository {
	return m.checkInRepo
}

func (m *MockUnitOfWork) DayClaims() interfaces.DayClaimRepository {
	return m.dayClaimRepo
}

func (m *MockUnitOfWork) RewardLedger() interfaces.RewardLedgerRepository {
	return m.rewardLedgerRepo
}

func (m *MockUnitOfWork) Mints() interfaces.MintRepository {
	return m.mintRepo
}

func (m *MockUnitOfWork) Clicks() interfaces.ClickRepository {
	return m.clickRepo
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() repository.UnitOfWork {
	args := m.Called()
	return args.Get(0).(repository.UnitOfWork)
}

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ConfirmTransaction(ctx context.Context, signature string) error {
	args := m.Called(ctx, signature)
	return args.Error(0)
}

func (m *MockChainClient) TransactionSender(ctx context.Context, signature string) (string, error) {
	args := m.Called(ctx, signature)
	return args.String(0), args.Error(1)
}

func (m *MockChainClient) NFTMints(ctx context.Context, wallet string) ([]string, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChainClient) Transfer(ctx context.Context, toWallet string, lamports int64) (string, error) {
	args := m.Called(ctx, toWallet, lamports)
	return args.String(0), args.Error(1)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockProfileResolver is a mock implementation of ProfileResolver
type MockProfileResolver struct {
	mock.Mock
}

func (m *MockProfileResolver) Resolve(ctx context.Context, username string) (*entities.SocialProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SocialProfile), args.Error(1)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendModerationReview(ctx context.Context, review interfaces.ModerationReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// MockBroadcaster is a mock implementation of Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, text string, links []string) *interfaces.BroadcastReport {
	args := m.Called(ctx, text, links)
	return args.Get(0).(*interfaces.BroadcastReport)
}
