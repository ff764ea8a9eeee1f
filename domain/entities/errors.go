package entities

import "errors"

var (
	// ErrAlreadyCheckedIn is returned when a wallet attempts a second
	// check-in for the same epoch day. The unique constraint on
	// (epoch_day, wallet) is the sole guard against double-counting.
	ErrAlreadyCheckedIn = errors.New("already checked in for this day")

	// ErrDayNotSettled is returned when an entitlement is requested for a
	// day whose total weight has not been frozen yet. Callers must not
	// treat this as zero entitlement.
	ErrDayNotSettled = errors.New("day is not settled yet")

	// ErrNoPendingRewards is returned by a reward claim when every settled
	// day the wallet checked into has already been paid out.
	ErrNoPendingRewards = errors.New("no pending rewards")

	// ErrClaimNotFound is returned when no billboard claim exists for the
	// requested epoch day.
	ErrClaimNotFound = errors.New("no claim for this day")
)
