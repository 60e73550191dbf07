package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type AdminUserRepository struct {
	db *sqlx.DB
}

func NewAdminUserRepo(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(ctx context.Context, username, passwordHash string, role domain.AdminRole) (*domain.AdminUser, error) {
	const query = `
		INSERT INTO admin_user (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, role, created_at, updated_at
	`
	var admin domain.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, username, passwordHash, string(role)); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminUserRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM admin_user
		WHERE username = $1
	`
	var admin domain.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM admin_user
		WHERE id = $1
	`
	var admin domain.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

var _ ports.AdminUserRepository = (*AdminUserRepository)(nil)
