package domain

import (
	"time"

	"github.com/google/uuid"
)

type SavedDestination struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"userId"`
	DestinationID uuid.UUID `db:"destination_id" json:"destinationId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// SavedDestinationItem is a bookmark joined with the destination it points at.
type SavedDestinationItem struct {
	SavedDestination
	DestinationName     string              `db:"destination_name"`
	DestinationPhoto    string              `db:"destination_photo"`
	DestinationCategory DestinationCategory `db:"destination_category"`
	DestinationAddress  string              `db:"destination_address"`
	DestinationRating   float64             `db:"destination_rating"`
}

type SavedToggle struct {
	IsSaved bool
	Saved   *SavedDestination
}
