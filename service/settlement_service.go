package service

import (
	"context"

	"sigil/domain/entities"
	"sigil/domain/services"
	"sigil/metrics"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

// SettlementService freezes past days' total check-in weights so
// entitlements become computable and stable.
type SettlementService struct {
	uowFactory repository.UnitOfWorkFactory
	policy     *services.SettlementPolicy
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(uowFactory repository.UnitOfWorkFactory) *SettlementService {
	return &SettlementService{
		uowFactory: uowFactory,
		policy:     services.NewSettlementPolicy(),
	}
}

// SettleDay attempts to settle one epoch day. All outcomes are reported
// through the result status; only storage failures return an error. The
// freeze is a conditional update from total_weight 0, so repeat or
// concurrent invocations resolve to AlreadySettled instead of
// double-counting.
func (s *SettlementService) SettleDay(ctx context.Context, epochDay int64) (entities.SettleResult, error) {
	result := entities.SettleResult{EpochDay: epochDay}
	today := entities.CurrentEpochDay()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}
	defer uow.Rollback()

	claim, err := uow.DayClaims().GetByDay(ctx, epochDay)
	if err != nil {
		return result, err
	}

	var totalWeight int64
	if claim != nil && !claim.IsSettled() && s.policy.CanSettle(epochDay, today) {
		totalWeight, err = uow.CheckIns().TotalWeightForDay(ctx, epochDay)
		if err != nil {
			return result, err
		}
	}

	result.Status = s.policy.Classify(claim, totalWeight, today)
	if claim != nil {
		result.IncentiveLamports = claim.IncentiveLamports
		result.TotalWeight = claim.TotalWeight
	}

	if result.Status != entities.SettleStatusSettled {
		metrics.DaysSettled.WithLabelValues(string(result.Status)).Inc()
		return result, uow.Commit()
	}

	frozen, err := uow.DayClaims().FreezeTotalWeight(ctx, epochDay, totalWeight)
	if err != nil {
		return result, err
	}
	if !frozen {
		// Another settlement run won the conditional update
		result.Status = entities.SettleStatusAlreadySettled
		metrics.DaysSettled.WithLabelValues(string(result.Status)).Inc()
		return result, uow.Commit()
	}

	if err := uow.Commit(); err != nil {
		return result, err
	}

	result.TotalWeight = totalWeight
	metrics.DaysSettled.WithLabelValues(string(result.Status)).Inc()
	log.WithFields(log.Fields{
		"epochDay":    epochDay,
		"totalWeight": totalWeight,
		"incentive":   result.IncentiveLamports,
	}).Info("Day settled")

	return result, nil
}

// SettleAllPast settles every unsettled claimed day strictly before today.
// Days that resolve to AlreadySettled or NoParticipants never abort the
// batch; storage failures on one day are logged and the batch continues.
func (s *SettlementService) SettleAllPast(ctx context.Context) ([]entities.SettleResult, error) {
	today := entities.CurrentEpochDay()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	claims, err := uow.DayClaims().GetUnsettledBefore(ctx, today)
	if rollbackErr := uow.Rollback(); rollbackErr != nil {
		log.Warnf("Failed to roll back settlement scan: %v", rollbackErr)
	}
	if err != nil {
		return nil, err
	}

	var results []entities.SettleResult
	for _, claim := range claims {
		result, err := s.SettleDay(ctx, claim.EpochDay)
		if err != nil {
			log.Errorf("Failed to settle day %d: %v", claim.EpochDay, err)
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
