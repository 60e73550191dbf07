package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type MetricsRepository struct {
	db *sqlx.DB
}

func NewMetricsRepo(db *sqlx.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

func tableFor(collection domain.MetricsCollection) (string, error) {
	switch collection {
	case domain.CollectionUsers:
		return "app_user", nil
	case domain.CollectionDestinations:
		return "destination", nil
	case domain.CollectionRatings:
		return "rating", nil
	case domain.CollectionSavedDestinations:
		return "saved_destination", nil
	}
	return "", fmt.Errorf("metrics: unknown collection %q", collection)
}

func (r *MetricsRepository) Count(ctx context.Context, collection domain.MetricsCollection, since *time.Time) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}
	query := `SELECT COUNT(*) FROM ` + table
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, *since)
	}
	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MetricsRepository) CountVerifiedUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM app_user WHERE is_verified`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MetricsRepository) CountUsersByStatus(ctx context.Context, status domain.UserStatus) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM app_user WHERE status = $1`, string(status)); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MetricsRepository) DailyCounts(ctx context.Context, collection domain.MetricsCollection, since time.Time) ([]domain.DailyCount, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM %s
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`, table)
	counts := make([]domain.DailyCount, 0)
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *MetricsRepository) DestinationsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	const query = `
		SELECT category, COUNT(*) AS count
		FROM destination
		GROUP BY category
		ORDER BY count DESC, category
	`
	counts := make([]domain.CategoryCount, 0)
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *MetricsRepository) TopRatedDestinations(ctx context.Context, limit int) ([]domain.TopRatedDestination, error) {
	const query = `
		SELECT id, name, average_rating, category, photo_main
		FROM destination
		ORDER BY average_rating DESC, name
		LIMIT $1
	`
	items := make([]domain.TopRatedDestination, 0)
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MetricsRepository) RatingTotals(ctx context.Context) (domain.RatingTotals, error) {
	const query = `SELECT COALESCE(SUM(rating), 0)::bigint AS rating_sum, COUNT(*) AS rating_count FROM rating`
	var totals domain.RatingTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return domain.RatingTotals{}, err
	}
	return totals, nil
}

// RatingsPerDestination returns the destinations with the most ratings and
// their unrounded mean.
func (r *MetricsRepository) RatingsPerDestination(ctx context.Context, limit int) ([]domain.DestinationRatingSummary, error) {
	const query = `
		SELECT
			r.destination_id,
			COALESCE(d.name, '') AS destination_name,
			COUNT(*) AS count,
			AVG(r.rating)::float8 AS average_rating
		FROM rating r
		LEFT JOIN destination d ON d.id = r.destination_id
		GROUP BY r.destination_id, d.name
		ORDER BY count DESC, destination_name
		LIMIT $1
	`
	items := make([]domain.DestinationRatingSummary, 0)
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.MetricsRepository = (*MetricsRepository)(nil)
