package entities

import "time"

// RewardStatus represents the delivery state of a reward payout.
type RewardStatus string

const (
	RewardStatusPending RewardStatus = "pending"
	RewardStatusSent    RewardStatus = "sent"
	RewardStatusFailed  RewardStatus = "failed"
)

// RewardRecord represents one payout (completed or in flight) to a wallet
// for a specific epoch day. Non-failed records count against the wallet's
// entitlement for that day.
type RewardRecord struct {
	ID             int64        `db:"id"`
	EpochDay       int64        `db:"epoch_day"`
	Wallet         string       `db:"wallet"`
	AmountLamports int64        `db:"amount_lamports"`
	TxSignature    *string      `db:"tx_signature"` // NULL until dispatched
	Status         RewardStatus `db:"status"`
	CreatedAt      time.Time    `db:"created_at"`
}

// CountsTowardPaid returns true if this record reduces the wallet's pending
// entitlement. Failed payouts are retryable and do not count.
func (r *RewardRecord) CountsTowardPaid() bool {
	return r.Status != RewardStatusFailed
}
