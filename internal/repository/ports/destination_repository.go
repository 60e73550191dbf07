package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, destination *domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, input domain.DestinationInput) (*domain.Destination, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, int64, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	// SetAverageRating writes the derived average directly; only the rating
	// maintainer calls it.
	SetAverageRating(ctx context.Context, id uuid.UUID, average float64) error
	// DeleteCascade removes the destination together with its ratings.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
