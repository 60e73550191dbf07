package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

// VehicleRepository scopes every lookup to the owning user and to active rows.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error)
	FindActive(ctx context.Context, id, userID uuid.UUID) (*domain.Vehicle, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.VehicleInput) (*domain.Vehicle, error)
	Deactivate(ctx context.Context, id, userID uuid.UUID) error
	SetImage(ctx context.Context, id, userID uuid.UUID, imageURL string) (*domain.Vehicle, error)
}
