package domain

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleSport     VehicleType = "Sport"
	VehicleCruiser   VehicleType = "Cruiser"
	VehicleTouring   VehicleType = "Touring"
	VehicleStandard  VehicleType = "Standard"
	VehicleDualSport VehicleType = "Dual-Sport"
	VehicleAdventure VehicleType = "Adventure"
	VehicleScooter   VehicleType = "Scooter"
	VehicleOffRoad   VehicleType = "Off-Road"
	VehicleOther     VehicleType = "Other"
)

var VehicleTypes = []VehicleType{
	VehicleSport, VehicleCruiser, VehicleTouring, VehicleStandard, VehicleDualSport,
	VehicleAdventure, VehicleScooter, VehicleOffRoad, VehicleOther,
}

func (t VehicleType) Valid() bool {
	for _, known := range VehicleTypes {
		if t == known {
			return true
		}
	}
	return false
}

const MinVehicleYear = 1900

// MaxVehicleYear allows next year's models.
func MaxVehicleYear(now time.Time) int {
	return now.Year() + 1
}

type Vehicle struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	UserID         uuid.UUID   `db:"user_id" json:"user"`
	Name           string      `db:"name" json:"name"`
	Brand          string      `db:"brand" json:"brand"`
	Model          string      `db:"model" json:"model"`
	Type           VehicleType `db:"type" json:"type"`
	Year           *int        `db:"year" json:"year,omitempty"`
	EngineCapacity string      `db:"engine_capacity" json:"engineCapacity"`
	PlateNumber    string      `db:"plate_number" json:"plateNumber"`
	Color          string      `db:"color" json:"color"`
	Image          string      `db:"image" json:"image"`
	IsActive       bool        `db:"is_active" json:"isActive"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`
}

type VehicleInput struct {
	Name           *string `json:"name" validate:"omitempty,max=100"`
	Brand          *string `json:"brand" validate:"omitempty,max=50"`
	Model          *string `json:"model" validate:"omitempty,max=50"`
	Type           *string `json:"type"`
	Year           *int    `json:"year"`
	EngineCapacity *string `json:"engineCapacity" validate:"omitempty,max=20"`
	PlateNumber    *string `json:"plateNumber" validate:"omitempty,max=20"`
	Color          *string `json:"color" validate:"omitempty,max=30"`
}
