package interfaces

import (
	"context"

	"sigil/domain/entities"
)

// CheckInRepository defines data access for the daily check-in ledger
type CheckInRepository interface {
	// Record inserts a check-in. Returns entities.ErrAlreadyCheckedIn when
	// the (epoch_day, wallet) pair already exists.
	Record(ctx context.Context, checkIn *entities.CheckIn) error

	// GetByDayAndWallet returns one check-in, or nil if absent
	GetByDayAndWallet(ctx context.Context, epochDay int64, wallet string) (*entities.CheckIn, error)

	// GetByWallet returns all check-ins for one wallet across all days
	GetByWallet(ctx context.Context, wallet string) ([]*entities.CheckIn, error)

	// CountForDay returns how many wallets have checked in on a day
	CountForDay(ctx context.Context, epochDay int64) (int64, error)

	// TotalWeightForDay sums all recorded weights for a day
	TotalWeightForDay(ctx context.Context, epochDay int64) (int64, error)
}

// DayClaimRepository defines data access for billboard claims and their
// incentive pools
type DayClaimRepository interface {
	// GetByDay returns the claim for a day, or nil if the day is unclaimed
	GetByDay(ctx context.Context, epochDay int64) (*entities.DayClaim, error)

	// GetRange returns all claims with fromDay <= epoch_day <= toDay
	GetRange(ctx context.Context, fromDay, toDay int64) ([]*entities.DayClaim, error)

	// GetByClaimer returns all days claimed by one wallet, newest first
	GetByClaimer(ctx context.Context, claimerWallet string) ([]*entities.DayClaim, error)

	// GetSettledByDays returns settled claims (total_weight > 0) among the
	// given days
	GetSettledByDays(ctx context.Context, epochDays []int64) ([]*entities.DayClaim, error)

	// GetUnsettledBefore returns unsettled claims strictly before the given
	// day, oldest first
	GetUnsettledBefore(ctx context.Context, epochDay int64) ([]*entities.DayClaim, error)

	// GetLargestIncentive returns the claim with the highest incentive, or
	// nil if no day was ever claimed
	GetLargestIncentive(ctx context.Context) (*entities.DayClaim, error)

	// Upsert inserts or replaces the claim for its epoch day
	Upsert(ctx context.Context, claim *entities.DayClaim) error

	// FreezeTotalWeight stamps the settled total weight onto an unsettled
	// day. Returns false if the day was already settled (conditional
	// update, total_weight must still be 0).
	FreezeTotalWeight(ctx context.Context, epochDay, totalWeight int64) (bool, error)

	// SetModerationStatus updates the review state for a day
	SetModerationStatus(ctx context.Context, epochDay int64, status entities.ModerationStatus) error
}

// RewardLedgerRepository defines data access for dispatched payouts
type RewardLedgerRepository interface {
	// Record inserts a payout record
	Record(ctx context.Context, record *entities.RewardRecord) error

	// PaidByDay sums non-failed payout amounts per epoch day for a wallet
	PaidByDay(ctx context.Context, wallet string) (map[int64]int64, error)

	// UpdateStatus transitions a payout record's delivery state. Resolves
	// pending records once an operator settles the signature.
	UpdateStatus(ctx context.Context, id int64, status entities.RewardStatus) error
}

// MintRepository defines data access for the token mint registry
type MintRepository interface {
	// Create records a newly minted token
	Create(ctx context.Context, mint *entities.NFTMint) error

	// Count returns the total number of minted tokens
	Count(ctx context.Context) (int64, error)

	// AnyRegistered returns true if at least one of the given mint
	// addresses belongs to the collection registry
	AnyRegistered(ctx context.Context, mintAddresses []string) (bool, error)

	// OwnerHoldsToken returns true if the wallet owns at least one token
	// according to the local registry
	OwnerHoldsToken(ctx context.Context, wallet string) (bool, error)
}

// ClickRepository defines data access for billboard link click tracking
type ClickRepository interface {
	// Record inserts one click
	Record(ctx context.Context, click *entities.Click) error

	// CountByDays returns the number of clicks per epoch day for the given
	// days. Days with no clicks are absent from the map.
	CountByDays(ctx context.Context, epochDays []int64) (map[int64]int64, error)
}
