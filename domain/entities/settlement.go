package entities

// SettleStatus is the outcome of a settlement attempt for one epoch day.
type SettleStatus string

const (
	// SettleStatusSettled means this call froze the day's total weight.
	SettleStatusSettled SettleStatus = "settled"
	// SettleStatusAlreadySettled means the day was settled earlier; the
	// call was a no-op, not a failure.
	SettleStatusAlreadySettled SettleStatus = "already_settled"
	// SettleStatusNoParticipants means the day had no check-ins. It stays
	// unsettled and remains eligible for a later retry.
	SettleStatusNoParticipants SettleStatus = "no_participants"
	// SettleStatusNotYetClosed means the day is today or in the future and
	// cannot be settled until it has fully elapsed.
	SettleStatusNotYetClosed SettleStatus = "not_yet_closed"
	// SettleStatusNoClaim means nobody funded the day, so there is nothing
	// to settle.
	SettleStatusNoClaim SettleStatus = "no_claim"
)

// SettleResult reports what a settlement attempt did for one day.
type SettleResult struct {
	EpochDay          int64
	Status            SettleStatus
	TotalWeight       int64
	IncentiveLamports int64
}

// Settled returns true if this call performed the freeze.
func (r SettleResult) Settled() bool {
	return r.Status == SettleStatusSettled
}
