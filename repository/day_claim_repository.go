package repository

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const dayClaimColumns = `epoch_day, claimer_wallet, link_url, image_url, incentive_lamports,
	       total_weight, farcaster_username, farcaster_pfp_url, farcaster_fid,
	       moderation_status, claimed_at`

// DayClaimRepository implements billboard claim data access
type DayClaimRepository struct {
	q Queryable
}

// NewDayClaimRepository creates a new day claim repository
func NewDayClaimRepository(q Queryable) interfaces.DayClaimRepository {
	return &DayClaimRepository{q: q}
}

// GetByDay retrieves the claim for a day, or nil if the day is unclaimed
func (r *DayClaimRepository) GetByDay(ctx context.Context, epochDay int64) (*entities.DayClaim, error) {
	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		WHERE epoch_day = $1
	`

	claim, err := scanDayClaim(r.q.QueryRow(ctx, query, epochDay))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day claim for day %d: %w", epochDay, err)
	}

	return claim, nil
}

// GetRange returns all claims within [fromDay, toDay]
func (r *DayClaimRepository) GetRange(ctx context.Context, fromDay, toDay int64) ([]*entities.DayClaim, error) {
	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		WHERE epoch_day >= $1 AND epoch_day <= $2
		ORDER BY epoch_day ASC
	`

	rows, err := r.q.Query(ctx, query, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to get day claims in range [%d, %d]: %w", fromDay, toDay, err)
	}
	defer rows.Close()

	return scanDayClaims(rows)
}

// GetByClaimer returns all days claimed by one wallet, newest first
func (r *DayClaimRepository) GetByClaimer(ctx context.Context, claimerWallet string) ([]*entities.DayClaim, error) {
	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		WHERE claimer_wallet = $1
		ORDER BY epoch_day DESC
	`

	rows, err := r.q.Query(ctx, query, claimerWallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get day claims for wallet %s: %w", claimerWallet, err)
	}
	defer rows.Close()

	return scanDayClaims(rows)
}

// GetSettledByDays returns settled claims among the given days
func (r *DayClaimRepository) GetSettledByDays(ctx context.Context, epochDays []int64) ([]*entities.DayClaim, error) {
	if len(epochDays) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		WHERE epoch_day = ANY($1)
		  AND total_weight > 0
		ORDER BY epoch_day ASC
	`

	rows, err := r.q.Query(ctx, query, epochDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get settled day claims: %w", err)
	}
	defer rows.Close()

	return scanDayClaims(rows)
}

// GetUnsettledBefore returns unsettled claims strictly before the given
// day, oldest first
func (r *DayClaimRepository) GetUnsettledBefore(ctx context.Context, epochDay int64) ([]*entities.DayClaim, error) {
	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		WHERE epoch_day < $1
		  AND total_weight = 0
		ORDER BY epoch_day ASC
	`

	rows, err := r.q.Query(ctx, query, epochDay)
	if err != nil {
		return nil, fmt.Errorf("failed to get unsettled day claims before day %d: %w", epochDay, err)
	}
	defer rows.Close()

	return scanDayClaims(rows)
}

// GetLargestIncentive returns the claim with the highest incentive
func (r *DayClaimRepository) GetLargestIncentive(ctx context.Context) (*entities.DayClaim, error) {
	query := `
		SELECT ` + dayClaimColumns + `
		FROM day_claims
		ORDER BY incentive_lamports DESC
		LIMIT 1
	`

	claim, err := scanDayClaim(r.q.QueryRow(ctx, query))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get largest incentive claim: %w", err)
	}

	return claim, nil
}

// Upsert inserts or replaces the claim for its epoch day
func (r *DayClaimRepository) Upsert(ctx context.Context, claim *entities.DayClaim) error {
	query := `
		INSERT INTO day_claims (epoch_day, claimer_wallet, link_url, image_url,
		                        incentive_lamports, farcaster_username, farcaster_pfp_url,
		                        farcaster_fid, moderation_status, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (epoch_day) DO UPDATE SET
			claimer_wallet = EXCLUDED.claimer_wallet,
			link_url = EXCLUDED.link_url,
			image_url = EXCLUDED.image_url,
			incentive_lamports = EXCLUDED.incentive_lamports,
			farcaster_username = EXCLUDED.farcaster_username,
			farcaster_pfp_url = EXCLUDED.farcaster_pfp_url,
			farcaster_fid = EXCLUDED.farcaster_fid,
			moderation_status = EXCLUDED.moderation_status,
			claimed_at = EXCLUDED.claimed_at
	`

	_, err := r.q.Exec(ctx, query,
		claim.EpochDay,
		claim.ClaimerWallet,
		claim.LinkURL,
		claim.ImageURL,
		claim.IncentiveLamports,
		claim.FarcasterUsername,
		claim.FarcasterPfpURL,
		claim.FarcasterFID,
		claim.ModerationStatus,
		claim.ClaimedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day claim for day %d: %w", claim.EpochDay, err)
	}

	return nil
}

// FreezeTotalWeight stamps the settled total weight onto an unsettled day.
// The WHERE total_weight = 0 guard makes the 0 -> N transition a single
// conditional update, so concurrent settlement runs cannot double-stamp.
func (r *DayClaimRepository) FreezeTotalWeight(ctx context.Context, epochDay, totalWeight int64) (bool, error) {
	query := `
		UPDATE day_claims
		SET total_weight = $2
		WHERE epoch_day = $1
		  AND total_weight = 0
	`

	result, err := r.q.Exec(ctx, query, epochDay, totalWeight)
	if err != nil {
		return false, fmt.Errorf("failed to freeze total weight for day %d: %w", epochDay, err)
	}

	return result.RowsAffected() > 0, nil
}

// SetModerationStatus updates the review state for a day
func (r *DayClaimRepository) SetModerationStatus(ctx context.Context, epochDay int64, status entities.ModerationStatus) error {
	query := `
		UPDATE day_claims
		SET moderation_status = $2
		WHERE epoch_day = $1
	`

	result, err := r.q.Exec(ctx, query, epochDay, status)
	if err != nil {
		return fmt.Errorf("failed to set moderation status for day %d: %w", epochDay, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrClaimNotFound
	}

	return nil
}

func scanDayClaim(row pgx.Row) (*entities.DayClaim, error) {
	var claim entities.DayClaim
	err := row.Scan(
		&claim.EpochDay,
		&claim.ClaimerWallet,
		&claim.LinkURL,
		&claim.ImageURL,
		&claim.IncentiveLamports,
		&claim.TotalWeight,
		&claim.FarcasterUsername,
		&claim.FarcasterPfpURL,
		&claim.FarcasterFID,
		&claim.ModerationStatus,
		&claim.ClaimedAt,
	)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func scanDayClaims(rows pgx.Rows) ([]*entities.DayClaim, error) {
	var claims []*entities.DayClaim
	for rows.Next() {
		claim, err := scanDayClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day claim: %w", err)
		}
		claims = append(claims, claim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day claims: %w", err)
	}

	return claims, nil
}
