package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

const ratingSelect = `
	SELECT
		r.id,
		r.destination_id,
		r.user_id,
		r.rating,
		r.comment,
		r.media,
		r.created_at,
		r.updated_at,
		u.name AS user_name,
		u.email AS user_email,
		u.profile_image AS user_image,
		d.name AS destination_name,
		d.photo_main AS destination_photo
	FROM rating r
	JOIN app_user u ON u.id = r.user_id
	JOIN destination d ON d.id = r.destination_id
`

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepo(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating, replaceMedia bool) (*domain.RatingUpsert, error) {
	const query = `
		INSERT INTO rating (destination_id, user_id, rating, comment, media)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, destination_id) DO UPDATE
		SET rating = EXCLUDED.rating,
		    comment = EXCLUDED.comment,
		    media = CASE WHEN $6::boolean THEN EXCLUDED.media ELSE rating.media END,
		    updated_at = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`
	media := rating.Media
	if media == nil {
		media = domain.RatingMediaList{}
	}

	var row struct {
		ID       uuid.UUID `db:"id"`
		Inserted bool      `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &row, query,
		rating.DestinationID, rating.UserID, rating.Rating, rating.Comment, media, replaceMedia,
	); err != nil {
		return nil, err
	}

	stored, err := r.GetByID(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RatingUpsert{Rating: stored, Created: row.Inserted}, nil
}

func (r *RatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error) {
	var rating domain.Rating
	if err := r.db.GetContext(ctx, &rating, ratingSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) Update(ctx context.Context, id uuid.UUID, value *int, comment *string) (*domain.Rating, error) {
	set := newUpdateSet(id)
	if value != nil {
		set.add("rating", *value)
	}
	if comment != nil {
		set.add("comment", *comment)
	}
	query := fmt.Sprintf(`UPDATE rating SET %s WHERE id = $1`, set.clause())
	result, err := r.db.ExecContext(ctx, query, set.args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *RatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rating WHERE id = $1`, id)
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

func (r *RatingRepository) List(ctx context.Context, filter domain.RatingFilter) ([]domain.Rating, int64, error) {
	where := &whereSet{}
	if filter.DestinationID != nil {
		where.add("r.destination_id = $%d", *filter.DestinationID)
	}
	if filter.UserID != nil {
		where.add("r.user_id = $%d", *filter.UserID)
	}
	if filter.Min != nil {
		where.add("r.rating >= $%d", *filter.Min)
	}
	if filter.Max != nil {
		where.add("r.rating <= $%d", *filter.Max)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM rating r `+where.clause(), where.args...); err != nil {
		return nil, 0, err
	}

	idx := where.next()
	args := append(append([]any{}, where.args...), filter.Limit, filter.Offset)
	query := fmt.Sprintf(`%s %s ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d`,
		ratingSelect, where.clause(), idx, idx+1)

	ratings := make([]domain.Rating, 0)
	if err := r.db.SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *RatingRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Rating, error) {
	ratings := make([]domain.Rating, 0)
	query := ratingSelect + ` WHERE r.destination_id = $1 ORDER BY r.created_at DESC, r.id DESC`
	if err := r.db.SelectContext(ctx, &ratings, query, destinationID); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) TotalsByDestination(ctx context.Context, destinationID uuid.UUID) (domain.RatingTotals, error) {
	const query = `
		SELECT COALESCE(SUM(rating), 0)::bigint AS rating_sum, COUNT(*) AS rating_count
		FROM rating
		WHERE destination_id = $1
	`
	var totals domain.RatingTotals
	if err := r.db.GetContext(ctx, &totals, query, destinationID); err != nil {
		return domain.RatingTotals{}, err
	}
	return totals, nil
}

func (r *RatingRepository) DestinationIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT destination_id FROM rating WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ ports.RatingRepository = (*RatingRepository)(nil)
