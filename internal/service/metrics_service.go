package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

var ErrMetricsUnavailable = errors.New("metrics unavailable")

const defaultMetricsConcurrency = 4

type MetricsServiceConfig struct {
	// Concurrency caps the number of aggregate queries in flight.
	Concurrency int
	Logger      logrus.FieldLogger
}

// MetricsService builds the admin dashboard overview. Every metric is queried
// independently; a failing one is reported in Failures while the rest of the
// overview is still returned.
type MetricsService struct {
	metrics     ports.MetricsRepository
	concurrency int
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewMetricsService(metricsRepo ports.MetricsRepository, cfg MetricsServiceConfig) *MetricsService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultMetricsConcurrency
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MetricsService{
		metrics:     metricsRepo,
		concurrency: concurrency,
		log:         log.WithField("component", "metrics"),
		now:         time.Now,
	}
}

type metricTask struct {
	name string
	run  func(ctx context.Context) error
}

func (s *MetricsService) Overview(ctx context.Context, rawRange string) (*domain.MetricsOverview, error) {
	rng, err := domain.ParseMetricsRange(rawRange)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	since := rng.Since(now)
	trendSince := now.AddDate(0, 0, -domain.TrendWindowDays)

	out := &domain.MetricsOverview{
		Range:       rng,
		GeneratedAt: now,
		Users:       domain.UserMetrics{RegistrationTrend: []domain.DailyCount{}},
		Destinations: domain.DestinationMetrics{
			ByCategory: []domain.CategoryCount{},
			TopRated:   []domain.TopRatedDestination{},
		},
		Ratings:           domain.RatingMetrics{PerDestination: []domain.DestinationRatingSummary{}},
		SavedDestinations: domain.SavedDestinationMetrics{Trend: []domain.DailyCount{}},
	}

	// Each task writes to its own field, so no locking is needed on out.
	tasks := []metricTask{
		s.count("users.total", domain.CollectionUsers, nil, &out.Users.Total),
		s.count("users.new", domain.CollectionUsers, since, &out.Users.New),
		{"users.verified", func(ctx context.Context) (err error) {
			out.Users.Verified, err = s.metrics.CountVerifiedUsers(ctx)
			return err
		}},
		{"users.blocked", func(ctx context.Context) (err error) {
			out.Users.Blocked, err = s.metrics.CountUsersByStatus(ctx, domain.UserStatusBlocked)
			return err
		}},
		s.trend("users.registrationTrend", domain.CollectionUsers, trendSince, &out.Users.RegistrationTrend),

		s.count("destinations.total", domain.CollectionDestinations, nil, &out.Destinations.Total),
		s.count("destinations.new", domain.CollectionDestinations, since, &out.Destinations.New),
		{"destinations.byCategory", func(ctx context.Context) error {
			rows, err := s.metrics.DestinationsByCategory(ctx)
			if err != nil {
				return err
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
			out.Destinations.ByCategory = nonNil(rows)
			return nil
		}},
		{"destinations.topRated", func(ctx context.Context) error {
			rows, err := s.metrics.TopRatedDestinations(ctx, domain.TopN)
			if err != nil {
				return err
			}
			out.Destinations.TopRated = nonNil(rows)
			return nil
		}},

		s.count("ratings.total", domain.CollectionRatings, nil, &out.Ratings.Total),
		s.count("ratings.new", domain.CollectionRatings, since, &out.Ratings.New),
		{"ratings.overallAverage", func(ctx context.Context) error {
			totals, err := s.metrics.RatingTotals(ctx)
			if err != nil {
				return err
			}
			out.Ratings.OverallAverage = domain.AverageRating(totals.Sum, totals.Count)
			return nil
		}},
		{"ratings.perDestination", func(ctx context.Context) error {
			rows, err := s.metrics.RatingsPerDestination(ctx, domain.TopN)
			if err != nil {
				return err
			}
			for i := range rows {
				rows[i].AverageRating = domain.RoundOneDecimal(rows[i].AverageRating)
			}
			out.Ratings.PerDestination = nonNil(rows)
			return nil
		}},

		s.count("savedDestinations.total", domain.CollectionSavedDestinations, nil, &out.SavedDestinations.Total),
		s.count("savedDestinations.new", domain.CollectionSavedDestinations, since, &out.SavedDestinations.New),
		s.trend("savedDestinations.trend", domain.CollectionSavedDestinations, trendSince, &out.SavedDestinations.Trend),
	}

	var (
		mu       sync.Mutex
		failures []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := task.run(gctx); err != nil {
				s.log.WithError(err).WithField("metric", task.name).Warn("metric query failed")
				mu.Lock()
				failures = append(failures, task.name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(failures) == len(tasks) {
		return nil, ErrMetricsUnavailable
	}
	sort.Strings(failures)
	out.Failures = failures
	return out, nil
}

func (s *MetricsService) count(name string, collection domain.MetricsCollection, since *time.Time, dst *int64) metricTask {
	return metricTask{name: name, run: func(ctx context.Context) (err error) {
		*dst, err = s.metrics.Count(ctx, collection, since)
		return err
	}}
}

func (s *MetricsService) trend(name string, collection domain.MetricsCollection, since time.Time, dst *[]domain.DailyCount) metricTask {
	return metricTask{name: name, run: func(ctx context.Context) error {
		rows, err := s.metrics.DailyCounts(ctx, collection, since)
		if err != nil {
			return err
		}
		*dst = nonNil(rows)
		return nil
	}}
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
