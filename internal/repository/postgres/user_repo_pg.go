package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

const userColumns = `id, name, email, phone, profile_image, location, trips_completed, favorite_destinations,
	total_distance, is_verified, status, password_hash, password_salt, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	query := `
        INSERT INTO app_user (name, email, password_hash, password_salt)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, name, email, passwordHash, passwordSalt).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email, name string, imageURL *string) (*domain.User, error) {
	query := `
        INSERT INTO app_user (email, name, profile_image, is_verified)
        VALUES ($1, $2, COALESCE($3, ''), TRUE)
        ON CONFLICT (email) DO UPDATE
        SET name = CASE WHEN app_user.name = '' THEN EXCLUDED.name ELSE app_user.name END,
            profile_image = CASE WHEN app_user.profile_image = '' THEN EXCLUDED.profile_image ELSE app_user.profile_image END,
            is_verified = TRUE,
            updated_at = NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, email, name, imageURL).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM app_user WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	set := newUpdateSet(id)
	if update.Name != nil {
		set.add("name", strings.TrimSpace(*update.Name))
	}
	if update.Phone != nil {
		set.add("phone", strings.TrimSpace(*update.Phone))
	}
	if update.Location != nil {
		set.add("location", strings.TrimSpace(*update.Location))
	}
	if update.ProfileImage != nil {
		set.add("profile_image", *update.ProfileImage)
	}
	if update.TripsCompleted != nil {
		set.add("trips_completed", *update.TripsCompleted)
	}
	if update.FavoriteDestinations != nil {
		set.add("favorite_destinations", *update.FavoriteDestinations)
	}
	if update.TotalDistance != nil {
		set.add("total_distance", *update.TotalDistance)
	}
	if update.IsVerified != nil {
		set.add("is_verified", *update.IsVerified)
	}
	return r.updateReturning(ctx, set)
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*domain.User, error) {
	set := newUpdateSet(id)
	set.add("email", email)
	return r.updateReturning(ctx, set)
}

func (r *UserRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	set := newUpdateSet(id)
	set.add("status", string(status))
	return r.updateReturning(ctx, set)
}

func (r *UserRepository) updateReturning(ctx context.Context, set *updateSet) (*domain.User, error) {
	query := fmt.Sprintf(`UPDATE app_user SET %s WHERE id = $1 RETURNING %s`, set.clause(), userColumns)
	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, set.args...).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	where := &whereSet{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		where.add("(name ILIKE $%[1]d OR email ILIKE $%[1]d OR phone ILIKE $%[1]d)", pattern)
	}
	if filter.Verified != nil {
		where.add("is_verified = $%d", *filter.Verified)
	}
	if filter.Status != nil {
		where.add("status = $%d", string(*filter.Status))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM app_user `+where.clause(), where.args...); err != nil {
		return nil, 0, err
	}

	idx := where.next()
	args := append(append([]any{}, where.args...), filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM app_user %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		userColumns, where.clause(), idx, idx+1)

	users := make([]domain.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete removes the user; ratings, bookmarks and vehicles follow through the
// ON DELETE CASCADE foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

var _ ports.UserRepository = (*UserRepository)(nil)
