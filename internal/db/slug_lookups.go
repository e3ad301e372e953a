package db

import (
	"context"
	"fmt"

	"grimoire/internal/models"
)

// IncrementSlugLookup upserts the lookup count for a normalized query and the
// tier that resolved it.
func (d *DB) IncrementSlugLookup(ctx context.Context, query string, matchType models.MatchType) error {
	switch matchType {
	case models.MatchExact, models.MatchTitle, models.MatchAlias, models.MatchKeyword, models.MatchNone:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMatchType, matchType)
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO slug_lookups (query, match_type, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (query, match_type) DO UPDATE
		SET count = slug_lookups.count + 1, last_seen_at = NOW()
	`, query, string(matchType))
	if err != nil {
		return fmt.Errorf("failed to record slug lookup: %w", err)
	}
	return nil
}

// GetSlugLookupTotals returns lookup counts aggregated by match type for
// metrics export.
func (d *DB) GetSlugLookupTotals(ctx context.Context) ([]models.SlugLookupTotal, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT match_type, SUM(count)::BIGINT
		FROM slug_lookups
		GROUP BY match_type
		ORDER BY match_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.SlugLookupTotal
	for rows.Next() {
		var (
			t  models.SlugLookupTotal
			mt string
		)
		if err := rows.Scan(&mt, &t.Count); err != nil {
			return nil, err
		}
		t.MatchType = models.MatchType(mt)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Miss listing bounds.
const (
	DefaultMissLimit = 50
	MaxMissLimit     = 500
)

// GetTopMisses returns the most frequent queries that resolved to nothing.
// A non-positive limit uses DefaultMissLimit; larger ones are capped at
// MaxMissLimit.
func (d *DB) GetTopMisses(ctx context.Context, limit int) ([]models.SlugLookup, error) {
	limit = missLimit(limit)

	rows, err := d.Pool.Query(ctx, `
		SELECT query, match_type, count, last_seen_at
		FROM slug_lookups
		WHERE match_type = 'none'
		ORDER BY count DESC, last_seen_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.SlugLookup
	for rows.Next() {
		var (
			l  models.SlugLookup
			mt string
		)
		if err := rows.Scan(&l.Query, &mt, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		l.MatchType = models.MatchType(mt)
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

func missLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultMissLimit
	case limit > MaxMissLimit:
		return MaxMissLimit
	}
	return limit
}
