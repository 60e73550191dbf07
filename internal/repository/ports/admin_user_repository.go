package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type AdminUserRepository interface {
	Create(ctx context.Context, username, passwordHash string, role domain.AdminRole) (*domain.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
}
