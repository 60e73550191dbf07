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

const vehicleColumns = `id, user_id, name, brand, model, type, year, engine_capacity, plate_number, color,
	image, is_active, created_at, updated_at`

type VehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepo(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	query := `
		INSERT INTO vehicle (user_id, name, brand, model, type, year, engine_capacity, plate_number, color)
		VALUES (:user_id, :name, :brand, :model, :type, :year, :engine_capacity, :plate_number, :color)
		RETURNING ` + vehicleColumns

	rows, err := r.db.NamedQueryContext(ctx, query, v)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Vehicle
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *VehicleRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicle WHERE user_id = $1 AND is_active ORDER BY created_at DESC`
	vehicles := make([]domain.Vehicle, 0)
	if err := r.db.SelectContext(ctx, &vehicles, query, userID); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindActive(ctx context.Context, id, userID uuid.UUID) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicle WHERE id = $1 AND user_id = $2 AND is_active`
	var v domain.Vehicle
	if err := r.db.GetContext(ctx, &v, query, id, userID); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id, userID uuid.UUID, in domain.VehicleInput) (*domain.Vehicle, error) {
	set := newUpdateSet(id, userID)
	if in.Name != nil {
		set.add("name", trimmed(in.Name))
	}
	if in.Brand != nil {
		set.add("brand", trimmed(in.Brand))
	}
	if in.Model != nil {
		set.add("model", trimmed(in.Model))
	}
	if in.Type != nil {
		set.add("type", trimmed(in.Type))
	}
	if in.Year != nil {
		set.add("year", *in.Year)
	}
	if in.EngineCapacity != nil {
		set.add("engine_capacity", trimmed(in.EngineCapacity))
	}
	if in.PlateNumber != nil {
		set.add("plate_number", trimmed(in.PlateNumber))
	}
	if in.Color != nil {
		set.add("color", trimmed(in.Color))
	}
	return r.updateReturning(ctx, set)
}

func (r *VehicleRepository) Deactivate(ctx context.Context, id, userID uuid.UUID) error {
	const query = `
		UPDATE vehicle SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active
	`
	result, err := r.db.ExecContext(ctx, query, id, userID)
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

func (r *VehicleRepository) SetImage(ctx context.Context, id, userID uuid.UUID, imageURL string) (*domain.Vehicle, error) {
	set := newUpdateSet(id, userID)
	set.add("image", imageURL)
	return r.updateReturning(ctx, set)
}

func (r *VehicleRepository) updateReturning(ctx context.Context, set *updateSet) (*domain.Vehicle, error) {
	query := fmt.Sprintf(`
		UPDATE vehicle SET %s
		WHERE id = $1 AND user_id = $2 AND is_active
		RETURNING %s
	`, set.clause(), vehicleColumns)
	var v domain.Vehicle
	if err := r.db.GetContext(ctx, &v, query, set.args...); err != nil {
		return nil, err
	}
	return &v, nil
}

var _ ports.VehicleRepository = (*VehicleRepository)(nil)
