package ports

import (
	"context"
	"time"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

// MetricsRepository exposes read-only aggregate queries. A nil since means no
// lower bound on createdAt.
type MetricsRepository interface {
	Count(ctx context.Context, collection domain.MetricsCollection, since *time.Time) (int64, error)
	CountVerifiedUsers(ctx context.Context) (int64, error)
	CountUsersByStatus(ctx context.Context, status domain.UserStatus) (int64, error)
	DailyCounts(ctx context.Context, collection domain.MetricsCollection, since time.Time) ([]domain.DailyCount, error)
	DestinationsByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	TopRatedDestinations(ctx context.Context, limit int) ([]domain.TopRatedDestination, error)
	RatingTotals(ctx context.Context) (domain.RatingTotals, error)
	RatingsPerDestination(ctx context.Context, limit int) ([]domain.DestinationRatingSummary, error)
}
