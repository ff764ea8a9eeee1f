package service

import (
	"context"

	"sigil/domain/entities"
	"sigil/repository"
)

// Days shown by the claim calendar, today included.
const calendarWindowDays = 31

// CalendarService builds the forward-looking claim calendar.
type CalendarService struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(uowFactory repository.UnitOfWorkFactory) *CalendarService {
	return &CalendarService{uowFactory: uowFactory}
}

// CalendarDay is one cell of the claim calendar.
type CalendarDay struct {
	EpochDay          int64  `json:"epochDay"`
	Date              string `json:"date"`
	Label             string `json:"label"`
	IsToday           bool   `json:"isToday"`
	Claimed           bool   `json:"claimed"`
	FarcasterUsername string `json:"farcasterUsername,omitempty"`
	FarcasterPfp      string `json:"farcasterPfp,omitempty"`
	Wallet            string `json:"wallet,omitempty"`
}

// TodayBillboard returns today's claim (nil when unclaimed) and the total
// mint count, for the token metadata endpoint.
func (s *CalendarService) TodayBillboard(ctx context.Context) (*entities.DayClaim, int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	claim, err := uow.DayClaims().GetByDay(ctx, entities.CurrentEpochDay())
	if err != nil {
		return nil, 0, err
	}
	minted, err := uow.Mints().Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return claim, minted, uow.Commit()
}

// Calendar returns the claim window starting today. Every day in the
// window gets a cell whether claimed or not.
func (s *CalendarService) Calendar(ctx context.Context) ([]CalendarDay, int64, error) {
	today := entities.CurrentEpochDay()
	windowEnd := today + calendarWindowDays - 1

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	claims, err := uow.DayClaims().GetRange(ctx, today, windowEnd)
	if err != nil {
		return nil, 0, err
	}
	if err := uow.Commit(); err != nil {
		return nil, 0, err
	}

	byDay := make(map[int64]*entities.DayClaim, len(claims))
	for _, claim := range claims {
		byDay[claim.EpochDay] = claim
	}

	days := make([]CalendarDay, 0, calendarWindowDays)
	for d := today; d <= windowEnd; d++ {
		day := CalendarDay{
			EpochDay: d,
			Date:     entities.EpochDayStart(d).Format("2006-01-02"),
			Label:    entities.FormatEpochDay(d),
			IsToday:  d == today,
		}
		if claim := byDay[d]; claim != nil {
			day.Claimed = true
			day.Wallet = claim.ClaimerWallet
			if claim.FarcasterUsername != nil {
				day.FarcasterUsername = *claim.FarcasterUsername
			}
			if claim.FarcasterPfpURL != nil {
				day.FarcasterPfp = *claim.FarcasterPfpURL
			}
		}
		days = append(days, day)
	}

	return days, today, nil
}
