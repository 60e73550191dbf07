package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type SavedDestinationRepository interface {
	Toggle(ctx context.Context, userID, destinationID uuid.UUID) (*domain.SavedToggle, error)
	Exists(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error)
}
