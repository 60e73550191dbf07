package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type DestinationPhotos struct {
	Main   string   `json:"main"`
	Others []string `json:"others"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DestinationResponse is the public shape of a destination.
type DestinationResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Name          string                     `json:"name"`
	Photos        DestinationPhotos          `json:"photos"`
	Geo           GeoPoint                   `json:"geo"`
	Category      domain.DestinationCategory `json:"category"`
	AverageRating float64                    `json:"averageRating"`
	Description   string                     `json:"description"`
	Address       string                     `json:"address"`
	Tags          []string                   `json:"tags"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// DestinationRequest is accepted by create and update. It has no
// averageRating field, so a client can never set one.
type DestinationRequest struct {
	Name   *string `json:"name"`
	Photos *struct {
		Main   *string   `json:"main"`
		Others *[]string `json:"others"`
	} `json:"photos"`
	Geo *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"geo"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	Tags        *[]string `json:"tags"`
}

func (r DestinationRequest) toInput() domain.DestinationInput {
	in := domain.DestinationInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Address:     r.Address,
		Tags:        r.Tags,
	}
	if r.Photos != nil {
		in.PhotoMain = r.Photos.Main
		in.PhotoOthers = r.Photos.Others
	}
	if r.Geo != nil {
		in.Latitude = r.Geo.Lat
		in.Longitude = r.Geo.Lng
	}
	return in
}

func toDestinationResponse(d *domain.Destination) DestinationResponse {
	return DestinationResponse{
		ID:   d.ID,
		Name: d.Name,
		Photos: DestinationPhotos{
			Main:   d.PhotoMain,
			Others: nonNilStrings(d.PhotoOthers),
		},
		Geo:           GeoPoint{Lat: d.Latitude, Lng: d.Longitude},
		Category:      d.Category,
		AverageRating: d.AverageRating,
		Description:   d.Description,
		Address:       d.Address,
		Tags:          nonNilStrings(d.Tags),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDestinationResponses(items []domain.Destination) []DestinationResponse {
	out := make([]DestinationResponse, 0, len(items))
	for i := range items {
		out = append(out, toDestinationResponse(&items[i]))
	}
	return out
}

type RatingUser struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

type RatingDestination struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Photo string    `json:"photo,omitempty"`
}

type RatingResponse struct {
	ID            uuid.UUID            `json:"id"`
	DestinationID uuid.UUID            `json:"destinationId"`
	UserID        uuid.UUID            `json:"userId"`
	Rating        int                  `json:"rating"`
	Comment       string               `json:"comment"`
	Media         []domain.RatingMedia `json:"media"`
	User          *RatingUser          `json:"user,omitempty"`
	Destination   *RatingDestination   `json:"destination,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// RatingRequest keeps the value as a number so 3.5 reaches validation
// instead of failing to decode.
type RatingRequest struct {
	Rating  float64               `json:"rating"`
	Comment *string               `json:"comment"`
	Media   *[]domain.RatingMedia `json:"media"`
}

func toRatingResponse(r *domain.Rating) RatingResponse {
	out := RatingResponse{
		ID:            r.ID,
		DestinationID: r.DestinationID,
		UserID:        r.UserID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		Media:         []domain.RatingMedia(r.Media),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if out.Media == nil {
		out.Media = []domain.RatingMedia{}
	}
	if r.UserName != nil || r.UserEmail != nil {
		out.User = &RatingUser{
			ID:           r.UserID,
			Name:         deref(r.UserName),
			Email:        deref(r.UserEmail),
			ProfileImage: deref(r.UserImage),
		}
	}
	if r.DestinationName != nil {
		out.Destination = &RatingDestination{
			ID:    r.DestinationID,
			Name:  *r.DestinationName,
			Photo: deref(r.DestinationPhoto),
		}
	}
	return out
}

func toRatingResponses(items []domain.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(items))
	for i := range items {
		out = append(out, toRatingResponse(&items[i]))
	}
	return out
}

type SavedDestinationResponse struct {
	ID          uuid.UUID            `json:"id"`
	CreatedAt   time.Time            `json:"createdAt"`
	Destination SavedDestinationCard `json:"destination"`
}

type SavedDestinationCard struct {
	ID            uuid.UUID                  `json:"id"`
	Name          string                     `json:"name"`
	Photo         string                     `json:"photo"`
	Category      domain.DestinationCategory `json:"category"`
	Address       string                     `json:"address"`
	AverageRating float64                    `json:"averageRating"`
}

func toSavedResponses(items []domain.SavedDestinationItem) []SavedDestinationResponse {
	out := make([]SavedDestinationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, SavedDestinationResponse{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			Destination: SavedDestinationCard{
				ID:            item.DestinationID,
				Name:          item.DestinationName,
				Photo:         item.DestinationPhoto,
				Category:      item.DestinationCategory,
				Address:       item.DestinationAddress,
				AverageRating: item.DestinationRating,
			},
		})
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
