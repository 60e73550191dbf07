package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type SavedDestinationRepository struct {
	db *sqlx.DB
}

func NewSavedDestinationRepo(db *sqlx.DB) *SavedDestinationRepository {
	return &SavedDestinationRepository{db: db}
}

// Toggle removes the bookmark when present and creates it otherwise. Both
// branches run in one transaction so the pair never ends up duplicated.
func (r *SavedDestinationRepository) Toggle(ctx context.Context, userID, destinationID uuid.UUID) (*domain.SavedToggle, error) {
	var out domain.SavedToggle
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const remove = `
			DELETE FROM saved_destination
			WHERE user_id = $1 AND destination_id = $2
		`
		result, err := tx.ExecContext(ctx, remove, userID, destinationID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected > 0 {
			out = domain.SavedToggle{IsSaved: false}
			return nil
		}

		const insert = `
			INSERT INTO saved_destination (user_id, destination_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, destination_id) DO NOTHING
			RETURNING id, user_id, destination_id, created_at
		`
		var saved domain.SavedDestination
		err = tx.GetContext(ctx, &saved, insert, userID, destinationID)
		if errors.Is(err, sql.ErrNoRows) {
			// a concurrent toggle inserted the same pair first
			err = tx.GetContext(ctx, &saved, `
				SELECT id, user_id, destination_id, created_at
				FROM saved_destination
				WHERE user_id = $1 AND destination_id = $2
			`, userID, destinationID)
		}
		if err != nil {
			return err
		}
		out = domain.SavedToggle{IsSaved: true, Saved: &saved}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SavedDestinationRepository) Exists(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM saved_destination WHERE user_id = $1 AND destination_id = $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, destinationID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SavedDestinationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error) {
	const query = `
		SELECT
			s.id,
			s.user_id,
			s.destination_id,
			s.created_at,
			d.name AS destination_name,
			d.photo_main AS destination_photo,
			d.category AS destination_category,
			d.address AS destination_address,
			d.average_rating AS destination_rating
		FROM saved_destination s
		JOIN destination d ON d.id = s.destination_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.SavedDestinationItem, 0)
	for rows.Next() {
		var item domain.SavedDestinationItem
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SavedDestinationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_destination WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SavedDestinationRepository) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_destination WHERE destination_id = $1`, destinationID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.SavedDestinationRepository = (*SavedDestinationRepository)(nil)
