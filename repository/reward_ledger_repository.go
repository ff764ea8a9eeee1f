package repository

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
)

// RewardLedgerRepository implements payout ledger data access
type RewardLedgerRepository struct {
	q Queryable
}

// NewRewardLedgerRepository creates a new reward ledger repository
func NewRewardLedgerRepository(q Queryable) interfaces.RewardLedgerRepository {
	return &RewardLedgerRepository{q: q}
}

// Record inserts a payout record
func (r *RewardLedgerRepository) Record(ctx context.Context, record *entities.RewardRecord) error {
	query := `
		INSERT INTO reward_ledger (epoch_day, wallet, amount_lamports, tx_signature, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.EpochDay,
		record.Wallet,
		record.AmountLamports,
		record.TxSignature,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record reward for day %d: %w", record.EpochDay, err)
	}

	return nil
}

// PaidByDay sums non-failed payout amounts per epoch day for a wallet.
// Failed payouts are retryable, so they never count against entitlement.
func (r *RewardLedgerRepository) PaidByDay(ctx context.Context, wallet string) (map[int64]int64, error) {
	query := `
		SELECT epoch_day, SUM(amount_lamports)
		FROM reward_ledger
		WHERE wallet = $1
		  AND status IN ($2, $3)
		GROUP BY epoch_day
	`

	rows, err := r.q.Query(ctx, query, wallet, entities.RewardStatusSent, entities.RewardStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid rewards for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	paid := make(map[int64]int64)
	for rows.Next() {
		var epochDay, amount int64
		if err := rows.Scan(&epochDay, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan paid reward sum: %w", err)
		}
		paid[epochDay] = amount
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid reward sums: %w", err)
	}

	return paid, nil
}

// UpdateStatus transitions a payout record's delivery state. Pending
// records stay pending until an operator resolves their signature and
// calls this.
func (r *RewardLedgerRepository) UpdateStatus(ctx context.Context, id int64, status entities.RewardStatus) error {
	query := `
		UPDATE reward_ledger
		SET status = $2
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update reward %d status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reward record with ID %d not found", id)
	}

	return nil
}
