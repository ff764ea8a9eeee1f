package service

import (
	"context"
	"time"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
	"sigil/domain/services"
	"sigil/metrics"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

// RewardsService computes per-day entitlements and dispatches pending
// payouts from the treasury.
type RewardsService struct {
	uowFactory   repository.UnitOfWorkFactory
	chain        interfaces.ChainClient
	distribution *services.DistributionService
}

// NewRewardsService creates a new RewardsService
func NewRewardsService(uowFactory repository.UnitOfWorkFactory, chain interfaces.ChainClient) *RewardsService {
	return &RewardsService{
		uowFactory:   uowFactory,
		chain:        chain,
		distribution: services.NewDistributionService(),
	}
}

// RewardsBreakdown is a wallet's full reward position: settled per-day
// entitlements plus a live estimate for today's still-open pool.
type RewardsBreakdown struct {
	Wallet               string
	Days                 []services.DayEntitlement
	TotalEarnedLamports  int64
	TotalPaidLamports    int64
	TotalPendingLamports int64
	BonusDays            int64
	TodayEstimate        *services.DayEstimate
	TodayPoolLamports    int64
}

// ClaimResult reports a dispatched payout.
type ClaimResult struct {
	AmountLamports int64
	TxSignature    string
	Days           []int64
}

// Breakdown computes a wallet's reward position across every day it
// checked in. Settled days produce exact entitlements net of prior
// payouts; today's check-in, if any, produces an estimate from the
// current unfrozen weight.
func (s *RewardsService) Breakdown(ctx context.Context, wallet string) (*RewardsBreakdown, error) {
	today := entities.CurrentEpochDay()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	checkIns, err := uow.CheckIns().GetByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}

	breakdown := &RewardsBreakdown{Wallet: wallet}
	if len(checkIns) == 0 {
		return breakdown, uow.Commit()
	}

	byDay := make(map[int64]*entities.CheckIn, len(checkIns))
	days := make([]int64, 0, len(checkIns))
	for _, checkIn := range checkIns {
		byDay[checkIn.EpochDay] = checkIn
		days = append(days, checkIn.EpochDay)
		if checkIn.IsBonus() {
			breakdown.BonusDays++
		}
	}

	claims, err := uow.DayClaims().GetSettledByDays(ctx, days)
	if err != nil {
		return nil, err
	}

	paidByDay, err := uow.RewardLedger().PaidByDay(ctx, wallet)
	if err != nil {
		return nil, err
	}

	for _, claim := range claims {
		checkIn := byDay[claim.EpochDay]
		if checkIn == nil {
			continue
		}

		entitlement, err := s.distribution.Entitlement(checkIn, claim, paidByDay[claim.EpochDay])
		if err != nil {
			return nil, err
		}

		breakdown.Days = append(breakdown.Days, *entitlement)
		breakdown.TotalEarnedLamports += entitlement.EarnedLamports
		breakdown.TotalPaidLamports += entitlement.PaidLamports
		breakdown.TotalPendingLamports += entitlement.PendingLamports
	}

	if todayCheckIn := byDay[today]; todayCheckIn != nil {
		todayClaim, err := uow.DayClaims().GetByDay(ctx, today)
		if err != nil {
			return nil, err
		}
		if todayClaim != nil {
			currentWeight, err := uow.CheckIns().TotalWeightForDay(ctx, today)
			if err != nil {
				return nil, err
			}
			breakdown.TodayEstimate = s.distribution.Estimate(todayCheckIn, todayClaim, currentWeight)
			breakdown.TodayPoolLamports = todayClaim.IncentiveLamports
		}
	}

	return breakdown, uow.Commit()
}

// ClaimRewards validates a signed claim message, sums the wallet's pending
// entitlements across all settled days, and pays them out in a single
// treasury transfer. One ledger row is recorded per covered day so later
// entitlement math nets each day independently.
//
// A transfer that was submitted but not confirmed within the poll window
// is recorded as pending rather than failed. The lamports may still land,
// so the amount must count against the entitlement until an operator
// resolves the signature.
func (s *RewardsService) ClaimRewards(ctx context.Context, wallet, signature, message string) (*ClaimResult, error) {
	today := entities.CurrentEpochDay()

	if err := verifySignedMessage(wallet, signature, message, "claim rewards", today, time.Now()); err != nil {
		return nil, err
	}

	breakdown, err := s.Breakdown(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if breakdown.TotalPendingLamports <= 0 {
		return nil, entities.ErrNoPendingRewards
	}

	txSignature, transferErr := s.chain.Transfer(ctx, wallet, breakdown.TotalPendingLamports)
	if transferErr != nil && txSignature == "" {
		return nil, transferErr
	}

	status := entities.RewardStatusSent
	if transferErr != nil {
		// Submitted but unconfirmed. Record as pending so the amount stays
		// netted while the signature is resolved.
		status = entities.RewardStatusPending
		log.WithFields(log.Fields{
			"wallet":    wallet,
			"signature": txSignature,
		}).Warnf("Transfer submitted but unconfirmed: %v", transferErr)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	result := &ClaimResult{TxSignature: txSignature}
	for _, day := range breakdown.Days {
		if day.PendingLamports <= 0 {
			continue
		}
		record := &entities.RewardRecord{
			EpochDay:       day.EpochDay,
			Wallet:         wallet,
			AmountLamports: day.PendingLamports,
			TxSignature:    &txSignature,
			Status:         status,
		}
		if err := uow.RewardLedger().Record(ctx, record); err != nil {
			return nil, err
		}
		result.AmountLamports += day.PendingLamports
		result.Days = append(result.Days, day.EpochDay)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	metrics.RewardsPaid.Add(float64(result.AmountLamports))
	log.WithFields(log.Fields{
		"wallet":    wallet,
		"lamports":  result.AmountLamports,
		"days":      len(result.Days),
		"signature": txSignature,
		"status":    status,
	}).Info("Rewards claimed")

	return result, nil
}
