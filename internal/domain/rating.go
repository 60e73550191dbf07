package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRatingValue         = 1
	MaxRatingValue         = 5
	MaxRatingComment       = 500
	MaxRatingMediaAttached = 3
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// RatingMedia is the descriptor returned by the media host for one upload.
type RatingMedia struct {
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	Type      MediaKind `json:"type"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
}

// RatingMediaList is persisted as a JSONB column.
type RatingMediaList []RatingMedia

func (l RatingMediaList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *RatingMediaList) Scan(src any) error {
	if src == nil {
		*l = RatingMediaList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("rating media: unsupported scan type %T", src)
	}
	if len(data) == 0 {
		*l = RatingMediaList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Rating struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	DestinationID uuid.UUID       `db:"destination_id" json:"destinationId"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	Rating        int             `db:"rating" json:"rating"`
	Comment       string          `db:"comment" json:"comment"`
	Media         RatingMediaList `db:"media" json:"media"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`

	UserName         *string `db:"user_name" json:"-"`
	UserEmail        *string `db:"user_email" json:"-"`
	UserImage        *string `db:"user_image" json:"-"`
	DestinationName  *string `db:"destination_name" json:"-"`
	DestinationPhoto *string `db:"destination_photo" json:"-"`
}

// RatingUpsert is the outcome of an upsert; Created is false when an existing
// rating for the same user and destination was overwritten.
type RatingUpsert struct {
	Rating  *Rating
	Created bool
}

// RatingTotals is the raw material of the average: the sum and number of
// ratings currently referencing a destination.
type RatingTotals struct {
	Sum   int64 `db:"rating_sum"`
	Count int64 `db:"rating_count"`
}

type RatingFilter struct {
	DestinationID *uuid.UUID
	UserID        *uuid.UUID
	Min           *int
	Max           *int
	Limit         int
	Offset        int
}

// AverageRating returns the mean rounded to one decimal place, or 0 for an
// empty set.
func AverageRating(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return RoundOneDecimal(float64(sum) / float64(count))
}

func RoundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func ValidRatingValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}
