package repository

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// CheckInRepository implements check-in ledger data access
type CheckInRepository struct {
	q Queryable
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(q Queryable) interfaces.CheckInRepository {
	return &CheckInRepository{q: q}
}

// Record inserts a check-in. The unique constraint on (epoch_day, wallet)
// maps to entities.ErrAlreadyCheckedIn.
func (r *CheckInRepository) Record(ctx context.Context, checkIn *entities.CheckIn) error {
	query := `
		INSERT INTO check_ins (epoch_day, wallet, weight)
		VALUES ($1, $2, $3)
		RETURNING id, checked_in_at
	`

	err := r.q.QueryRow(ctx, query, checkIn.EpochDay, checkIn.Wallet, checkIn.Weight).Scan(
		&checkIn.ID,
		&checkIn.CheckedInAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to record check-in for day %d: %w", checkIn.EpochDay, err)
	}

	return nil
}

// GetByDayAndWallet retrieves one wallet's check-in for a day, or nil
func (r *CheckInRepository) GetByDayAndWallet(ctx context.Context, epochDay int64, wallet string) (*entities.CheckIn, error) {
	query := `
		SELECT id, epoch_day, wallet, weight, checked_in_at
		FROM check_ins
		WHERE epoch_day = $1 AND wallet = $2
	`

	var checkIn entities.CheckIn
	err := r.q.QueryRow(ctx, query, epochDay, wallet).Scan(
		&checkIn.ID,
		&checkIn.EpochDay,
		&checkIn.Wallet,
		&checkIn.Weight,
		&checkIn.CheckedInAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in for day %d: %w", epochDay, err)
	}

	return &checkIn, nil
}

// GetByWallet returns all check-ins for one wallet across all days
func (r *CheckInRepository) GetByWallet(ctx context.Context, wallet string) ([]*entities.CheckIn, error) {
	query := `
		SELECT id, epoch_day, wallet, weight, checked_in_at
		FROM check_ins
		WHERE wallet = $1
		ORDER BY epoch_day ASC
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

// CountForDay returns how many wallets have checked in on a day
func (r *CheckInRepository) CountForDay(ctx context.Context, epochDay int64) (int64, error) {
	query := `SELECT COUNT(*) FROM check_ins WHERE epoch_day = $1`

	var count int64
	if err := r.q.QueryRow(ctx, query, epochDay).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count check-ins for day %d: %w", epochDay, err)
	}

	return count, nil
}

// TotalWeightForDay sums all recorded weights for a day
func (r *CheckInRepository) TotalWeightForDay(ctx context.Context, epochDay int64) (int64, error) {
	query := `SELECT COALESCE(SUM(weight), 0) FROM check_ins WHERE epoch_day = $1`

	var total int64
	if err := r.q.QueryRow(ctx, query, epochDay).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum weights for day %d: %w", epochDay, err)
	}

	return total, nil
}

func scanCheckIns(rows pgx.Rows) ([]*entities.CheckIn, error) {
	var checkIns []*entities.CheckIn
	for rows.Next() {
		var checkIn entities.CheckIn
		err := rows.Scan(
			&checkIn.ID,
			&checkIn.EpochDay,
			&checkIn.Wallet,
			&checkIn.Weight,
			&checkIn.CheckedInAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, &checkIn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	return checkIns, nil
}
