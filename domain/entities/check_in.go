package entities

import "time"

// Check-in weights. Early check-ins within the daily bonus threshold earn
// double weight; everyone else gets the base weight.
const (
	WeightBase  int64 = 1
	WeightBonus int64 = 2
)

// CheckIn represents one holder's participation in one epoch day.
// Rows are insert-only; at most one exists per (epoch_day, wallet).
type CheckIn struct {
	ID          int64     `db:"id"`
	EpochDay    int64     `db:"epoch_day"`
	Wallet      string    `db:"wallet"`
	Weight      int64     `db:"weight"`
	CheckedInAt time.Time `db:"checked_in_at"`
}

// IsBonus returns true if this check-in earned the early-bird bonus weight.
func (c *CheckIn) IsBonus() bool {
	return c.Weight == WeightBonus
}

// WeightForPosition returns the weight awarded to the Nth check-in of a day
// (1-based) given the configured bonus threshold.
func WeightForPosition(position int64, bonusThreshold int64) int64 {
	if position <= bonusThreshold {
		return WeightBonus
	}
	return WeightBase
}
