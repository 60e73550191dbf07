package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DestinationCategory string

const (
	CategoryNature        DestinationCategory = "Nature"
	CategoryHistorical    DestinationCategory = "Historical"
	CategoryCultural      DestinationCategory = "Cultural"
	CategoryAdventure     DestinationCategory = "Adventure"
	CategoryBeach         DestinationCategory = "Beach"
	CategoryUrban         DestinationCategory = "Urban"
	CategoryReligious     DestinationCategory = "Religious"
	CategoryEntertainment DestinationCategory = "Entertainment"
)

var DestinationCategories = []DestinationCategory{
	CategoryNature,
	CategoryHistorical,
	CategoryCultural,
	CategoryAdventure,
	CategoryBeach,
	CategoryUrban,
	CategoryReligious,
	CategoryEntertainment,
}

func (c DestinationCategory) Valid() bool {
	for _, known := range DestinationCategories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	MaxDestinationNameLength    = 100
	MaxDestinationDescription   = 500
	MaxDestinationAddressLength = 200
	MaxDestinationOtherPhotos   = 3
	MaxDestinationTags          = 10
)

// Destination is stored flat; the nested photos/geo shape is produced by the
// transport layer.
type Destination struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	Name          string              `db:"name" json:"name"`
	PhotoMain     string              `db:"photo_main" json:"-"`
	PhotoOthers   pq.StringArray      `db:"photo_others" json:"-"`
	Latitude      float64             `db:"latitude" json:"-"`
	Longitude     float64             `db:"longitude" json:"-"`
	Category      DestinationCategory `db:"category" json:"category"`
	AverageRating float64             `db:"average_rating" json:"averageRating"`
	Description   string              `db:"description" json:"description"`
	Address       string              `db:"address" json:"address"`
	Tags          pq.StringArray      `db:"tags" json:"tags"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updatedAt"`
}

// DestinationInput carries client supplied fields. There is deliberately no
// average rating here: it is owned by the rating maintainer.
type DestinationInput struct {
	Name        *string
	PhotoMain   *string
	PhotoOthers *[]string
	Latitude    *float64
	Longitude   *float64
	Category    *string
	Description *string
	Address     *string
	Tags        *[]string
}

// Validate checks the supplied fields. With partial=false the fields required
// to create a destination must all be present.
func (in DestinationInput) Validate(partial bool) error {
	v := &ValidationError{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		switch {
		case name == "":
			v.Add("name", "name is required")
		case len([]rune(name)) > MaxDestinationNameLength:
			v.Add("name", fmt.Sprintf("name cannot exceed %d characters", MaxDestinationNameLength))
		}
	} else if !partial {
		v.Add("name", "name is required")
	}

	if in.PhotoMain != nil {
		if strings.TrimSpace(*in.PhotoMain) == "" {
			v.Add("photos.main", "main photo is required")
		}
	} else if !partial {
		v.Add("photos.main", "main photo is required")
	}
	if in.PhotoOthers != nil && len(*in.PhotoOthers) > MaxDestinationOtherPhotos {
		v.Add("photos.others", fmt.Sprintf("at most %d additional photos are allowed", MaxDestinationOtherPhotos))
	}

	if in.Latitude != nil {
		if *in.Latitude < -90 || *in.Latitude > 90 {
			v.Add("geo.lat", "latitude must be between -90 and 90")
		}
	} else if !partial {
		v.Add("geo.lat", "latitude is required")
	}
	if in.Longitude != nil {
		if *in.Longitude < -180 || *in.Longitude > 180 {
			v.Add("geo.lng", "longitude must be between -180 and 180")
		}
	} else if !partial {
		v.Add("geo.lng", "longitude is required")
	}

	if in.Category != nil {
		if !DestinationCategory(strings.TrimSpace(*in.Category)).Valid() {
			v.Add("category", "category must be one of "+joinCategories())
		}
	} else if !partial {
		v.Add("category", "category is required")
	}

	if in.Description != nil && len([]rune(*in.Description)) > MaxDestinationDescription {
		v.Add("description", fmt.Sprintf("description cannot exceed %d characters", MaxDestinationDescription))
	}
	if in.Address != nil && len([]rune(*in.Address)) > MaxDestinationAddressLength {
		v.Add("address", fmt.Sprintf("address cannot exceed %d characters", MaxDestinationAddressLength))
	}
	if in.Tags != nil && len(*in.Tags) > MaxDestinationTags {
		v.Add("tags", fmt.Sprintf("at most %d tags are allowed", MaxDestinationTags))
	}

	return v.Err()
}

func joinCategories() string {
	names := make([]string, 0, len(DestinationCategories))
	for _, c := range DestinationCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

type DestinationListFilter struct {
	Query    string
	Category string
	Tag      string
	Limit    int
	Offset   int
}
