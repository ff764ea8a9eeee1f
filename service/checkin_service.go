package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
	"sigil/metrics"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

// CheckInService handles daily holder check-ins
type CheckInService struct {
	uowFactory     repository.UnitOfWorkFactory
	chain          interfaces.ChainClient
	bonusThreshold int64
}

// NewCheckInService creates a new CheckInService
func NewCheckInService(uowFactory repository.UnitOfWorkFactory, chain interfaces.ChainClient, bonusThreshold int64) *CheckInService {
	return &CheckInService{
		uowFactory:     uowFactory,
		chain:          chain,
		bonusThreshold: bonusThreshold,
	}
}

// CheckInResult reports an accepted check-in.
type CheckInResult struct {
	EpochDay       int64
	Position       int64
	TotalCheckedIn int64
	Weight         int64
	BonusEarned    bool
}

// CheckInStatus reports a wallet's standing for one day.
type CheckInStatus struct {
	CheckedIn      bool
	Weight         int64
	TotalCheckedIn int64
	Eligible       bool
}

// CheckIn validates a signed check-in message, verifies the wallet holds a
// collection token, and records the check-in with its position weight.
// The count-then-insert position read is not atomic; concurrent check-ins
// can push bonus weight past the threshold, an accepted race since weights
// are frozen later at settlement.
func (s *CheckInService) CheckIn(ctx context.Context, wallet, signature, message string) (*CheckInResult, error) {
	today := entities.CurrentEpochDay()

	if err := verifySignedMessage(wallet, signature, message, "check-in", today, time.Now()); err != nil {
		return nil, err
	}

	holds, err := s.verifyHolder(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token holding: %w", err)
	}
	if !holds {
		return nil, ErrNotHolder
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	count, err := uow.CheckIns().CountForDay(ctx, today)
	if err != nil {
		return nil, err
	}

	position := count + 1
	weight := entities.WeightForPosition(position, s.bonusThreshold)

	checkIn := &entities.CheckIn{
		EpochDay: today,
		Wallet:   wallet,
		Weight:   weight,
	}
	if err := uow.CheckIns().Record(ctx, checkIn); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	metrics.CheckIns.WithLabelValues(strconv.FormatInt(weight, 10)).Inc()
	log.WithFields(log.Fields{
		"wallet":   wallet,
		"epochDay": today,
		"position": position,
		"weight":   weight,
	}).Info("Check-in recorded")

	return &CheckInResult{
		EpochDay:       today,
		Position:       position,
		TotalCheckedIn: position,
		Weight:         weight,
		BonusEarned:    weight == entities.WeightBonus,
	}, nil
}

// Status returns a wallet's check-in standing for a day along with its
// current eligibility. An eligibility probe that fails reports false
// rather than erroring; the wallet learns the truth when it checks in.
func (s *CheckInService) Status(ctx context.Context, wallet string, epochDay int64) (*CheckInStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	checkIn, err := uow.CheckIns().GetByDayAndWallet(ctx, epochDay, wallet)
	if err != nil {
		return nil, err
	}

	count, err := uow.CheckIns().CountForDay(ctx, epochDay)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	status := &CheckInStatus{TotalCheckedIn: count}
	if checkIn != nil {
		status.CheckedIn = true
		status.Weight = checkIn.Weight
	}

	eligible, err := s.verifyHolder(ctx, wallet)
	if err != nil {
		log.Warnf("Eligibility probe failed for wallet %s: %v", wallet, err)
	} else {
		status.Eligible = eligible
	}

	return status, nil
}

// verifyHolder lists the wallet's NFTs on chain and requires at least one
// of their mint addresses to be in the collection registry. Holding some
// unrelated NFT is not enough. When the RPC is unavailable the check
// falls back to registry ownership so a node outage does not lock holders
// out of their daily check-in.
func (s *CheckInService) verifyHolder(ctx context.Context, wallet string) (bool, error) {
	nftMints, err := s.chain.NFTMints(ctx, wallet)
	if err != nil {
		log.Warnf("Chain holder check failed, falling back to mint registry: %v", err)
		return s.registryHolds(ctx, wallet, err)
	}
	if len(nftMints) == 0 {
		return false, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	holds, err := uow.Mints().AnyRegistered(ctx, nftMints)
	if err != nil {
		return false, err
	}

	return holds, uow.Commit()
}

// registryHolds answers the holder check from the local mint registry
// alone. rpcErr is surfaced if the registry read also fails.
func (s *CheckInService) registryHolds(ctx context.Context, wallet string, rpcErr error) (bool, error) {
	uow := s.uowFactory.Create()
	if beginErr := uow.Begin(ctx); beginErr != nil {
		return false, rpcErr
	}
	defer uow.Rollback()

	holds, registryErr := uow.Mints().OwnerHoldsToken(ctx, wallet)
	if registryErr != nil {
		return false, rpcErr
	}

	return holds, uow.Commit()
}
