package services

import "sigil/domain/entities"

// SettlementPolicy contains the pure eligibility rules for freezing a
// day's total weight
type SettlementPolicy struct{}

// NewSettlementPolicy creates a new SettlementPolicy
func NewSettlementPolicy() *SettlementPolicy {
	return &SettlementPolicy{}
}

// CanSettle checks whether an epoch day is eligible for settlement
// relative to the current day. Today and future days have not fully
// elapsed, so their weights are still accumulating.
func (p *SettlementPolicy) CanSettle(epochDay, today int64) bool {
	return epochDay < today
}

// Classify determines the settlement outcome for a day given its claim
// state and summed check-in weight, without touching storage.
func (p *SettlementPolicy) Classify(claim *entities.DayClaim, totalWeight, today int64) entities.SettleStatus {
	if claim == nil {
		return entities.SettleStatusNoClaim
	}
	if !p.CanSettle(claim.EpochDay, today) {
		return entities.SettleStatusNotYetClosed
	}
	if claim.IsSettled() {
		return entities.SettleStatusAlreadySettled
	}
	if totalWeight == 0 {
		return entities.SettleStatusNoParticipants
	}
	return entities.SettleStatusSettled
}
