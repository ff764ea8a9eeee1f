package service

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
	"sigil/repository"

	log "github.com/sirupsen/logrus"
)

const lamportsPerSol = 1_000_000_000

// Announcement thresholds.
const (
	recordIncentiveFloor = lamportsPerSol / 2
	highCheckInFloor     = 50
)

// mintMilestones are announced once each, when the mint count first lands
// within a small window past the milestone.
var mintMilestones = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// NotifyService detects notable daily events and broadcasts them to the
// social platforms.
type NotifyService struct {
	uowFactory repository.UnitOfWorkFactory
	broadcast  interfaces.Broadcaster
	siteURL    string
}

// NewNotifyService creates a new NotifyService
func NewNotifyService(uowFactory repository.UnitOfWorkFactory, broadcast interfaces.Broadcaster, siteURL string) *NotifyService {
	return &NotifyService{
		uowFactory: uowFactory,
		broadcast:  broadcast,
		siteURL:    siteURL,
	}
}

// NotifyReport lists the events announced in one run with their
// per-platform outcomes.
type NotifyReport struct {
	Today     int64
	Yesterday int64
	Posted    []string
	Platforms map[string]map[string]bool
	Errors    map[string]map[string]string
}

// Notify checks for notable events since the last day flip and announces
// each one found: yesterday's billboard, a record incentive, a mint
// milestone, and a high check-in day. Platform failures never abort the
// run.
func (s *NotifyService) Notify(ctx context.Context) (*NotifyReport, error) {
	today := entities.CurrentEpochDay()
	yesterday := today - 1

	report := &NotifyReport{
		Today:     today,
		Yesterday: yesterday,
		Platforms: make(map[string]map[string]bool),
		Errors:    make(map[string]map[string]string),
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	yesterdayClaim, err := uow.DayClaims().GetByDay(ctx, yesterday)
	if err != nil {
		return nil, err
	}
	largest, err := uow.DayClaims().GetLargestIncentive(ctx)
	if err != nil {
		return nil, err
	}
	totalMinted, err := uow.Mints().Count(ctx)
	if err != nil {
		return nil, err
	}
	checkInCount, err := uow.CheckIns().CountForDay(ctx, yesterday)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if yesterdayClaim != nil {
		text := fmt.Sprintf("Day %d billboard by %s (%s SOL incentive).\n\nToday's billboard is open, claim it at %s",
			yesterday, yesterdayClaim.DisplayName(), formatSol(yesterdayClaim.IncentiveLamports), s.siteURL)

		var links []string
		if yesterdayClaim.LinkURL != nil {
			links = append(links, *yesterdayClaim.LinkURL)
		}
		if yesterdayClaim.ImageURL != nil {
			links = append(links, *yesterdayClaim.ImageURL)
		}
		s.announce(ctx, report, "day_flip", text, links)
	}

	if yesterdayClaim != nil && largest != nil &&
		largest.EpochDay == yesterday && yesterdayClaim.IncentiveLamports >= recordIncentiveFloor {
		text := fmt.Sprintf("New record! Day %d set the highest incentive ever on Sigil: %s SOL.\n\n%s",
			yesterday, formatSol(yesterdayClaim.IncentiveLamports), s.siteURL)
		s.announce(ctx, report, "record_incentive", text, nil)
	}

	// One milestone per run; the count must land within 5 mints past the
	// milestone or the announcement is considered missed.
	for _, m := range mintMilestones {
		if totalMinted >= m && totalMinted < m+5 {
			text := fmt.Sprintf("%d Sigils minted! The billboard grows.\n\nMint yours at %s", m, s.siteURL)
			s.announce(ctx, report, fmt.Sprintf("milestone_%d", m), text, nil)
			break
		}
	}

	if checkInCount >= highCheckInFloor {
		text := fmt.Sprintf("%d holders checked in on Day %d. The Sigil community is active.\n\n%s",
			checkInCount, yesterday, s.siteURL)
		s.announce(ctx, report, "high_checkins", text, nil)
	}

	return report, nil
}

func (s *NotifyService) announce(ctx context.Context, report *NotifyReport, event, text string, links []string) {
	result := s.broadcast.Broadcast(ctx, text, links)

	report.Platforms[event] = result.Platforms
	if len(result.Errors) > 0 {
		report.Errors[event] = result.Errors
	}
	if result.Posted() {
		report.Posted = append(report.Posted, event)
	}

	log.WithFields(log.Fields{
		"event":     event,
		"platforms": result.Platforms,
	}).Info("Announcement broadcast")
}

func formatSol(lamports int64) string {
	return fmt.Sprintf("%.2f", float64(lamports)/lamportsPerSol)
}
