package repository

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
)

// ClickRepository implements billboard click tracking data access
type ClickRepository struct {
	q Queryable
}

// NewClickRepository creates a new click repository
func NewClickRepository(q Queryable) interfaces.ClickRepository {
	return &ClickRepository{q: q}
}

// Record inserts one click
func (r *ClickRepository) Record(ctx context.Context, click *entities.Click) error {
	query := `
		INSERT INTO clicks (epoch_day, ip_hash, referrer, user_agent)
		VALUES ($1, $2, $3, $4)
		RETURNING id, clicked_at
	`

	err := r.q.QueryRow(ctx, query,
		click.EpochDay,
		click.IPHash,
		click.Referrer,
		click.UserAgent,
	).Scan(&click.ID, &click.ClickedAt)
	if err != nil {
		return fmt.Errorf("failed to record click for day %d: %w", click.EpochDay, err)
	}

	return nil
}

// CountByDays returns the number of clicks per epoch day for the given days
func (r *ClickRepository) CountByDays(ctx context.Context, epochDays []int64) (map[int64]int64, error) {
	if len(epochDays) == 0 {
		return nil, nil
	}

	query := `
		SELECT epoch_day, COUNT(*)
		FROM clicks
		WHERE epoch_day = ANY($1)
		GROUP BY epoch_day
	`

	rows, err := r.q.Query(ctx, query, epochDays)
	if err != nil {
		return nil, fmt.Errorf("failed to count clicks: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var epochDay, count int64
		if err := rows.Scan(&epochDay, &count); err != nil {
			return nil, fmt.Errorf("failed to scan click count: %w", err)
		}
		counts[epochDay] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate click counts: %w", err)
	}

	return counts, nil
}
