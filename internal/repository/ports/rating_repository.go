package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type RatingRepository interface {
	// Upsert inserts or overwrites the rating keyed by (user, destination) in a
	// single statement. Media is only replaced when replaceMedia is set.
	Upsert(ctx context.Context, rating *domain.Rating, replaceMedia bool) (*domain.RatingUpsert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error)
	Update(ctx context.Context, id uuid.UUID, value *int, comment *string) (*domain.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.RatingFilter) ([]domain.Rating, int64, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Rating, error)
	TotalsByDestination(ctx context.Context, destinationID uuid.UUID) (domain.RatingTotals, error)
	DestinationIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
