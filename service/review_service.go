package service

import (
	"context"
	"fmt"
	"strings"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

// ReviewAction is an admin moderation decision.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewDeny    ReviewAction = "deny"
)

// ReviewService applies admin moderation decisions to billboard claims.
type ReviewService struct {
	uowFactory repository.UnitOfWorkFactory
	chain      interfaces.ChainClient
	images     interfaces.ObjectStore
}

// NewReviewService creates a new ReviewService
func NewReviewService(uowFactory repository.UnitOfWorkFactory, chain interfaces.ChainClient, images interfaces.ObjectStore) *ReviewService {
	return &ReviewService{
		uowFactory: uowFactory,
		chain:      chain,
		images:     images,
	}
}

// ReviewResult reports the effect of a moderation decision.
type ReviewResult struct {
	EpochDay          int64
	Action            ReviewAction
	AlreadyDone       bool
	RefundedLamports  int64
	RefundTxSignature string
	RefundError       string
}

// Review applies an approve or deny decision to a day's claim. Repeating
// a decision is a no-op. Deny removes the stored billboard image and
// refunds the incentive to the claimer; a failed refund is reported in
// the result, not retried, since the denial itself already took effect.
func (s *ReviewService) Review(ctx context.Context, epochDay int64, action ReviewAction) (*ReviewResult, error) {
	if action != ReviewApprove && action != ReviewDeny {
		return nil, fmt.Errorf("%w: action must be approve or deny", ErrInvalidMessage)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	claim, err := uow.DayClaims().GetByDay(ctx, epochDay)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, entities.ErrClaimNotFound
	}

	result := &ReviewResult{EpochDay: epochDay, Action: action}

	target := entities.ModerationApproved
	if action == ReviewDeny {
		target = entities.ModerationDenied
	}
	if claim.ModerationStatus == target {
		result.AlreadyDone = true
		return result, uow.Commit()
	}

	if err := uow.DayClaims().SetModerationStatus(ctx, epochDay, target); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"epochDay": epochDay,
		"action":   action,
		"wallet":   claim.ClaimerWallet,
	}).Info("Moderation decision applied")

	if action == ReviewApprove {
		return result, nil
	}

	s.removeImage(ctx, claim)
	s.refund(ctx, claim, result)

	return result, nil
}

// removeImage deletes the denied billboard image from the object store.
func (s *ReviewService) removeImage(ctx context.Context, claim *entities.DayClaim) {
	if s.images == nil || !claim.HasImage() {
		return
	}

	name := *claim.ImageURL
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if err := s.images.Remove(ctx, name); err != nil {
		log.Warnf("Failed to remove denied billboard image %q: %v", name, err)
	}
}

// refund returns the denied claim's incentive to the claimer and records
// it in the reward ledger so treasury outflows stay accounted for.
func (s *ReviewService) refund(ctx context.Context, claim *entities.DayClaim, result *ReviewResult) {
	if claim.IncentiveLamports <= 0 || claim.ClaimerWallet == "" {
		return
	}

	txSignature, err := s.chain.Transfer(ctx, claim.ClaimerWallet, claim.IncentiveLamports)
	if err != nil {
		result.RefundError = err.Error()
		log.Errorf("Refund of %d lamports to %s failed: %v", claim.IncentiveLamports, claim.ClaimerWallet, err)
		return
	}

	result.RefundedLamports = claim.IncentiveLamports
	result.RefundTxSignature = txSignature

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to record refund for day %d: %v", claim.EpochDay, err)
		return
	}
	defer uow.Rollback()

	record := &entities.RewardRecord{
		EpochDay:       claim.EpochDay,
		Wallet:         claim.ClaimerWallet,
		AmountLamports: claim.IncentiveLamports,
		TxSignature:    &txSignature,
		Status:         entities.RewardStatusSent,
	}
	if err := uow.RewardLedger().Record(ctx, record); err != nil {
		log.Errorf("Failed to record refund for day %d: %v", claim.EpochDay, err)
		return
	}
	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to record refund for day %d: %v", claim.EpochDay, err)
	}
}
