package services

import (
	"sigil/domain/entities"
)

// DistributionService contains pure arithmetic for splitting a day's
// incentive pool across its check-in weights
type DistributionService struct{}

// NewDistributionService creates a new DistributionService
func NewDistributionService() *DistributionService {
	return &DistributionService{}
}

// DayEntitlement is one wallet's computed share of one settled day's pool,
// net of amounts already paid out.
type DayEntitlement struct {
	EpochDay          int64
	Weight            int64
	TotalWeight       int64
	IncentiveLamports int64
	EarnedLamports    int64
	PaidLamports      int64
	PendingLamports   int64
}

// DayEstimate is a wallet's projected share of an open day's pool. The
// figure moves as more holders check in before settlement freezes the
// total weight.
type DayEstimate struct {
	EpochDay           int64
	Weight             int64
	CurrentTotalWeight int64
	IncentiveLamports  int64
	EstimatedLamports  int64
}

// EarnedShare computes floor(weight * incentive / totalWeight) in lamports.
// Integer floor division avoids fractional-lamport payouts; the residual
// dust left after summing all shares is never redistributed.
func (s *DistributionService) EarnedShare(weight, totalWeight, incentiveLamports int64) int64 {
	if totalWeight <= 0 {
		return 0
	}
	return weight * incentiveLamports / totalWeight
}

// Entitlement computes a wallet's share of a settled day and nets out
// prior payouts. Returns entities.ErrDayNotSettled for an unsettled day so
// callers cannot mistake "not settled" for "nothing earned".
func (s *DistributionService) Entitlement(checkIn *entities.CheckIn, claim *entities.DayClaim, paidLamports int64) (*DayEntitlement, error) {
	if !claim.IsSettled() {
		return nil, entities.ErrDayNotSettled
	}

	earned := s.EarnedShare(checkIn.Weight, claim.TotalWeight, claim.IncentiveLamports)

	pending := earned - paidLamports
	if pending < 0 {
		pending = 0
	}

	return &DayEntitlement{
		EpochDay:          claim.EpochDay,
		Weight:            checkIn.Weight,
		TotalWeight:       claim.TotalWeight,
		IncentiveLamports: claim.IncentiveLamports,
		EarnedLamports:    earned,
		PaidLamports:      paidLamports,
		PendingLamports:   pending,
	}, nil
}

// Estimate projects a wallet's share of an open day from the current,
// unfrozen total weight. Returns nil when the wallet has no check-in or no
// weight has accumulated yet.
func (s *DistributionService) Estimate(checkIn *entities.CheckIn, claim *entities.DayClaim, currentTotalWeight int64) *DayEstimate {
	if checkIn == nil || currentTotalWeight <= 0 {
		return nil
	}

	return &DayEstimate{
		EpochDay:           claim.EpochDay,
		Weight:             checkIn.Weight,
		CurrentTotalWeight: currentTotalWeight,
		IncentiveLamports:  claim.IncentiveLamports,
		EstimatedLamports:  s.EarnedShare(checkIn.Weight, currentTotalWeight, claim.IncentiveLamports),
	}
}
