package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

const destinationColumns = `
	d.id, d.name, d.photo_main, d.photo_others, d.latitude, d.longitude, d.category,
	d.average_rating, d.description, d.address, d.tags, d.created_at, d.updated_at`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		INSERT INTO destination AS d (
			name, photo_main, photo_others, latitude, longitude, category, description, address, tags
		) VALUES (
			:name, :photo_main, :photo_others, :latitude, :longitude, :category, :description, :address, :tags
		)
		RETURNING ` + destinationColumns

	others := dest.PhotoOthers
	if others == nil {
		others = pq.StringArray{}
	}
	tags := dest.Tags
	if tags == nil {
		tags = pq.StringArray{}
	}
	args := map[string]any{
		"name":         dest.Name,
		"photo_main":   dest.PhotoMain,
		"photo_others": others,
		"latitude":     dest.Latitude,
		"longitude":    dest.Longitude,
		"category":     string(dest.Category),
		"description":  dest.Description,
		"address":      dest.Address,
		"tags":         tags,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) Update(ctx context.Context, id uuid.UUID, in domain.DestinationInput) (*domain.Destination, error) {
	set := newUpdateSet(id)
	if in.Name != nil {
		set.add("name", trimmed(in.Name))
	}
	if in.PhotoMain != nil {
		set.add("photo_main", trimmed(in.PhotoMain))
	}
	if in.PhotoOthers != nil {
		set.add("photo_others", pq.StringArray(*in.PhotoOthers))
	}
	if in.Latitude != nil {
		set.add("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		set.add("longitude", *in.Longitude)
	}
	if in.Category != nil {
		set.add("category", trimmed(in.Category))
	}
	if in.Description != nil {
		set.add("description", *in.Description)
	}
	if in.Address != nil {
		set.add("address", *in.Address)
	}
	if in.Tags != nil {
		set.add("tags", pq.StringArray(*in.Tags))
	}

	query := fmt.Sprintf(`
		UPDATE destination AS d
		SET %s
		WHERE d.id = $1
		RETURNING %s
	`, set.clause(), destinationColumns)

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, set.args...); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destination d WHERE d.id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, int64, error) {
	where := &whereSet{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where.add(`to_tsvector('simple', d.name || ' ' || d.description || ' ' || array_to_string(d.tags, ' ')) @@ plainto_tsquery('simple', $%d)`, q)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		where.add("d.category = $%d", c)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		where.add("$%d = ANY(d.tags)", tag)
	}

	countQuery := `SELECT COUNT(*) FROM destination d ` + where.clause()
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return nil, 0, err
	}

	idx := where.next()
	args := append(append([]any{}, where.args...), filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM destination d
		%s
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $%d OFFSET $%d
	`, destinationColumns, where.clause(), idx, idx+1)

	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, query, args...); err != nil {
		return nil, 0, err
	}
	return destinations, total, nil
}

func (r *DestinationRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM destination ORDER BY id`); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *DestinationRepository) SetAverageRating(ctx context.Context, id uuid.UUID, average float64) error {
	const query = `UPDATE destination SET average_rating = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, average)
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

func (r *DestinationRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rating WHERE destination_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM saved_destination WHERE destination_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM destination WHERE id = $1`, id)
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
	})
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
