package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type UserRepository interface {
	CreateEmailUser(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, email, name string, imageURL *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*domain.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
