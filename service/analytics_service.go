package service

import (
	"context"
	"time"

	"sigil/domain/entities"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

// AnalyticsService tracks billboard link clicks and reports them back to
// the advertisers who bought the days.
type AnalyticsService struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(uowFactory repository.UnitOfWorkFactory) *AnalyticsService {
	return &AnalyticsService{uowFactory: uowFactory}
}

// ClickVisitor carries what a redirect request reveals about the visitor.
// The IP arrives pre-hashed; the raw address is never stored.
type ClickVisitor struct {
	IPHash    string
	Referrer  string
	UserAgent string
}

// ClaimStats is one claimed day with its click count.
type ClaimStats struct {
	EpochDay          int64     `json:"epochDay"`
	Date              string    `json:"date"`
	ClaimedAt         time.Time `json:"claimedAt"`
	FarcasterUsername string    `json:"farcasterUsername,omitempty"`
	Clicks            int64     `json:"clicks"`
}

// AdvertiserReport aggregates an advertiser's claimed days and their
// clicks.
type AdvertiserReport struct {
	Claims      []ClaimStats `json:"claims"`
	TotalClicks int64        `json:"totalClicks"`
}

// Redirect resolves the billboard link for a day and records the click.
// It returns "" when the day is unclaimed or has no link; the caller
// falls back to the site root. A failed click insert is logged, never
// surfaced, so tracking problems cannot break the advertiser's link.
func (s *AnalyticsService) Redirect(ctx context.Context, epochDay int64, visitor ClickVisitor) (string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	claim, err := uow.DayClaims().GetByDay(ctx, epochDay)
	if err != nil {
		return "", err
	}
	if claim == nil || claim.LinkURL == nil || *claim.LinkURL == "" {
		return "", uow.Commit()
	}
	target := *claim.LinkURL

	click := &entities.Click{
		EpochDay: epochDay,
		IPHash:   visitor.IPHash,
	}
	if visitor.Referrer != "" {
		click.Referrer = &visitor.Referrer
	}
	if visitor.UserAgent != "" {
		click.UserAgent = &visitor.UserAgent
	}

	if err := uow.Clicks().Record(ctx, click); err != nil {
		log.Errorf("Failed to record click for day %d: %v", epochDay, err)
		return target, nil
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit click for day %d: %v", epochDay, err)
	}

	return target, nil
}

// Analytics returns every day the wallet claimed, newest first, with
// per-day and total click counts.
func (s *AnalyticsService) Analytics(ctx context.Context, claimerWallet string) (*AdvertiserReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	claims, err := uow.DayClaims().GetByClaimer(ctx, claimerWallet)
	if err != nil {
		return nil, err
	}

	report := &AdvertiserReport{Claims: []ClaimStats{}}
	if len(claims) == 0 {
		return report, uow.Commit()
	}

	days := make([]int64, 0, len(claims))
	for _, claim := range claims {
		days = append(days, claim.EpochDay)
	}

	clicks, err := uow.Clicks().CountByDays(ctx, days)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	for _, claim := range claims {
		stats := ClaimStats{
			EpochDay:  claim.EpochDay,
			Date:      entities.EpochDayStart(claim.EpochDay).Format("2006-01-02"),
			ClaimedAt: claim.ClaimedAt,
			Clicks:    clicks[claim.EpochDay],
		}
		if claim.FarcasterUsername != nil {
			stats.FarcasterUsername = *claim.FarcasterUsername
		}
		report.Claims = append(report.Claims, stats)
		report.TotalClicks += stats.Clicks
	}

	return report, nil
}
