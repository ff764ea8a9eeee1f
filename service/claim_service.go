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

// ClaimService handles billboard day claims: confirming the purchase
// transaction, storing the billboard content, and routing image claims
// through moderation.
type ClaimService struct {
	uowFactory repository.UnitOfWorkFactory
	chain      interfaces.ChainClient
	images     interfaces.ObjectStore
	profiles   interfaces.ProfileResolver
	mailer     interfaces.Mailer
}

// NewClaimService creates a new ClaimService. The object store, profile
// resolver and mailer may be nil; the corresponding steps are skipped.
func NewClaimService(
	uowFactory repository.UnitOfWorkFactory,
	chain interfaces.ChainClient,
	images interfaces.ObjectStore,
	profiles interfaces.ProfileResolver,
	mailer interfaces.Mailer,
) *ClaimService {
	return &ClaimService{
		uowFactory: uowFactory,
		chain:      chain,
		images:     images,
		profiles:   profiles,
		mailer:     mailer,
	}
}

// ClaimDayInput carries a billboard claim submission.
type ClaimDayInput struct {
	TxSignature       string
	EpochDay          int64
	IncentiveLamports int64
	LinkURL           string
	FarcasterUsername string
	ImageData         []byte
	ImageContentType  string
}

// ClaimDayResult reports a stored claim.
type ClaimDayResult struct {
	EpochDay         int64
	ClaimerWallet    string
	ImageURL         string
	ModerationStatus entities.ModerationStatus
}

// ClaimDay confirms the purchase transaction, takes its fee payer as the
// claimer wallet, and upserts the day's claim. Claims with an image enter
// moderation as pending and trigger a review email; text-only claims are
// auto-approved. Image upload, profile resolution and email delivery are
// best effort and never fail the claim.
func (s *ClaimService) ClaimDay(ctx context.Context, input ClaimDayInput) (*ClaimDayResult, error) {
	if input.TxSignature == "" || input.EpochDay == 0 {
		return nil, fmt.Errorf("%w: txSignature and epochDay are required", ErrInvalidMessage)
	}

	if err := s.chain.ConfirmTransaction(ctx, input.TxSignature); err != nil {
		return nil, fmt.Errorf("failed to confirm claim transaction: %w", err)
	}

	claimerWallet, err := s.chain.TransactionSender(ctx, input.TxSignature)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve claim sender: %w", err)
	}

	claim := &entities.DayClaim{
		EpochDay:          input.EpochDay,
		ClaimerWallet:     claimerWallet,
		IncentiveLamports: input.IncentiveLamports,
		ModerationStatus:  entities.ModerationApproved,
	}
	if input.LinkURL != "" {
		claim.LinkURL = &input.LinkURL
	}

	if imageURL := s.uploadImage(ctx, input); imageURL != "" {
		claim.ImageURL = &imageURL
		claim.ModerationStatus = entities.ModerationPending
	}

	s.resolveProfile(ctx, input.FarcasterUsername, claim)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DayClaims().Upsert(ctx, claim); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if claim.ModerationStatus == entities.ModerationPending {
		s.sendReviewMail(ctx, claim)
	}

	log.WithFields(log.Fields{
		"epochDay":   input.EpochDay,
		"wallet":     claimerWallet,
		"incentive":  input.IncentiveLamports,
		"moderation": claim.ModerationStatus,
	}).Info("Day claimed")

	result := &ClaimDayResult{
		EpochDay:         claim.EpochDay,
		ClaimerWallet:    claimerWallet,
		ModerationStatus: claim.ModerationStatus,
	}
	if claim.ImageURL != nil {
		result.ImageURL = *claim.ImageURL
	}
	return result, nil
}

// uploadImage stores the billboard image under a per-day key and returns
// its public URL, or "" when no image was provided or the upload failed.
func (s *ClaimService) uploadImage(ctx context.Context, input ClaimDayInput) string {
	if s.images == nil || len(input.ImageData) == 0 {
		return ""
	}

	ext := "jpg"
	if input.ImageContentType == "image/png" {
		ext = "png"
	}
	name := fmt.Sprintf("day-%d.%s", input.EpochDay, ext)

	url, err := s.images.Put(ctx, name, input.ImageContentType, input.ImageData)
	if err != nil {
		log.Errorf("Failed to upload billboard image for day %d: %v", input.EpochDay, err)
		return ""
	}
	return url
}

// resolveProfile fills the claim's Farcaster fields from the social graph.
// Resolution failures leave the fields empty.
func (s *ClaimService) resolveProfile(ctx context.Context, username string, claim *entities.DayClaim) {
	if username == "" {
		return
	}

	handle := strings.TrimPrefix(username, "@")
	claim.FarcasterUsername = &handle

	if s.profiles == nil {
		return
	}
	profile, err := s.profiles.Resolve(ctx, handle)
	if err != nil {
		log.Warnf("Failed to resolve Farcaster profile %q: %v", handle, err)
		return
	}
	if profile == nil {
		return
	}

	if profile.PfpURL != "" {
		claim.FarcasterPfpURL = &profile.PfpURL
	}
	if profile.FID != 0 {
		fid := profile.FID
		claim.FarcasterFID = &fid
	}
}

func (s *ClaimService) sendReviewMail(ctx context.Context, claim *entities.DayClaim) {
	if s.mailer == nil {
		return
	}

	review := interfaces.ModerationReview{
		EpochDay:          claim.EpochDay,
		ClaimerWallet:     claim.ClaimerWallet,
		IncentiveLamports: claim.IncentiveLamports,
	}
	if claim.ImageURL != nil {
		review.ImageURL = *claim.ImageURL
	}
	if claim.LinkURL != nil {
		review.LinkURL = *claim.LinkURL
	}
	if claim.FarcasterUsername != nil {
		review.FarcasterUsername = *claim.FarcasterUsername
	}

	if err := s.mailer.SendModerationReview(ctx, review); err != nil {
		log.Errorf("Failed to send moderation email for day %d: %v", claim.EpochDay, err)
	}
}
