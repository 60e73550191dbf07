package domain

import (
	"time"

	"github.com/google/uuid"
)

type MetricsRange string

const (
	MetricsRange7d  MetricsRange = "7d"
	MetricsRange30d MetricsRange = "30d"
	MetricsRange90d MetricsRange = "90d"
	MetricsRangeAll MetricsRange = "all"

	DefaultMetricsRange = MetricsRange30d
	// TrendWindowDays is the fixed window of the per-day trend series.
	TrendWindowDays = 30
	TopN            = 5
)

func ParseMetricsRange(raw string) (MetricsRange, error) {
	switch MetricsRange(raw) {
	case "":
		return DefaultMetricsRange, nil
	case MetricsRange7d, MetricsRange30d, MetricsRange90d, MetricsRangeAll:
		return MetricsRange(raw), nil
	}
	return "", NewValidationError("range", "range must be one of 7d, 30d, 90d, all")
}

// Since is the createdAt lower bound for "new" counters; nil means unbounded.
func (r MetricsRange) Since(now time.Time) *time.Time {
	var days int
	switch r {
	case MetricsRange7d:
		days = 7
	case MetricsRange30d:
		days = 30
	case MetricsRange90d:
		days = 90
	default:
		return nil
	}
	t := now.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

type MetricsCollection string

const (
	CollectionUsers             MetricsCollection = "users"
	CollectionDestinations      MetricsCollection = "destinations"
	CollectionRatings           MetricsCollection = "ratings"
	CollectionSavedDestinations MetricsCollection = "saved_destinations"
)

type DailyCount struct {
	Date  string `db:"day" json:"date"`
	Count int64  `db:"count" json:"count"`
}

type CategoryCount struct {
	Category DestinationCategory `db:"category" json:"category"`
	Count    int64               `db:"count" json:"count"`
}

type TopRatedDestination struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	Name          string              `db:"name" json:"name"`
	AverageRating float64             `db:"average_rating" json:"averageRating"`
	Category      DestinationCategory `db:"category" json:"category"`
	PhotoMain     string              `db:"photo_main" json:"photoMain"`
}

type DestinationRatingSummary struct {
	DestinationID   uuid.UUID `db:"destination_id" json:"destinationId"`
	DestinationName string    `db:"destination_name" json:"destinationName"`
	Count           int64     `db:"count" json:"count"`
	AverageRating   float64   `db:"average_rating" json:"averageRating"`
}

type UserMetrics struct {
	Total             int64        `json:"total"`
	New               int64        `json:"new"`
	Verified          int64        `json:"verified"`
	Blocked           int64        `json:"blocked"`
	RegistrationTrend []DailyCount `json:"registrationTrend"`
}

type DestinationMetrics struct {
	Total      int64                 `json:"total"`
	New        int64                 `json:"new"`
	ByCategory []CategoryCount       `json:"byCategory"`
	TopRated   []TopRatedDestination `json:"topRated"`
}

type RatingMetrics struct {
	Total          int64                      `json:"total"`
	New            int64                      `json:"new"`
	OverallAverage float64                    `json:"overallAverage"`
	PerDestination []DestinationRatingSummary `json:"perDestination"`
}

type SavedDestinationMetrics struct {
	Total int64        `json:"total"`
	New   int64        `json:"new"`
	Trend []DailyCount `json:"trend"`
}

// MetricsOverview is the dashboard summary. Failures names the metrics that
// could not be computed; the remaining sections are still populated.
type MetricsOverview struct {
	Range             MetricsRange            `json:"range"`
	GeneratedAt       time.Time               `json:"generatedAt"`
	Users             UserMetrics             `json:"users"`
	Destinations      DestinationMetrics      `json:"destinations"`
	Ratings           RatingMetrics           `json:"ratings"`
	SavedDestinations SavedDestinationMetrics `json:"savedDestinations"`
	Failures          []string                `json:"failures,omitempty"`
}
