package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type VehicleService struct {
	vehicles ports.VehicleRepository
	uploads  *UploadService
	now      func() time.Time
}

func NewVehicleService(vehicleRepo ports.VehicleRepository, uploads *UploadService) *VehicleService {
	return &VehicleService{vehicles: vehicleRepo, uploads: uploads, now: time.Now}
}

func (s *VehicleService) List(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error) {
	return s.vehicles.ListActiveByUser(ctx, userID)
}

func (s *VehicleService) Get(ctx context.Context, userID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	v, err := s.vehicles.FindActive(ctx, vehicleID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) Create(ctx context.Context, userID uuid.UUID, input domain.VehicleInput) (*domain.Vehicle, error) {
	input = trimVehicleInput(input)
	if err := s.validate(input, false); err != nil {
		return nil, err
	}
	vehicleType := domain.VehicleStandard
	if input.Type != nil && *input.Type != "" {
		vehicleType = domain.VehicleType(*input.Type)
	}
	return s.vehicles.Create(ctx, &domain.Vehicle{
		UserID:         userID,
		Name:           *input.Name,
		Brand:          *input.Brand,
		Model:          trimOrEmpty(input.Model),
		Type:           vehicleType,
		Year:           input.Year,
		EngineCapacity: trimOrEmpty(input.EngineCapacity),
		PlateNumber:    trimOrEmpty(input.PlateNumber),
		Color:          trimOrEmpty(input.Color),
	})
}

func (s *VehicleService) Update(ctx context.Context, userID, vehicleID uuid.UUID, input domain.VehicleInput) (*domain.Vehicle, error) {
	input = trimVehicleInput(input)
	if err := s.validate(input, true); err != nil {
		return nil, err
	}
	v, err := s.vehicles.Update(ctx, vehicleID, userID, input)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// Delete is a soft delete: the row stays but is no longer listed.
func (s *VehicleService) Delete(ctx context.Context, userID, vehicleID uuid.UUID) error {
	if err := s.vehicles.Deactivate(ctx, vehicleID, userID); err != nil {
		if isNotFound(err) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

func (s *VehicleService) UploadImage(ctx context.Context, userID, vehicleID uuid.UUID, file FileUpload) (*domain.Vehicle, error) {
	if _, err := s.Get(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	stored, err := s.uploads.UploadImage(ctx, FolderVehicles, file)
	if err != nil {
		return nil, err
	}
	v, err := s.vehicles.SetImage(ctx, vehicleID, userID, stored.URL)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) validate(input domain.VehicleInput, partial bool) error {
	v := &domain.ValidationError{}
	if !partial {
		if input.Name == nil || *input.Name == "" {
			v.Add("name", "name is required")
		}
		if input.Brand == nil || *input.Brand == "" {
			v.Add("brand", "brand is required")
		}
	} else {
		if input.Name != nil && *input.Name == "" {
			v.Add("name", "name cannot be empty")
		}
		if input.Brand != nil && *input.Brand == "" {
			v.Add("brand", "brand cannot be empty")
		}
	}
	if input.Type != nil && *input.Type != "" && !domain.VehicleType(*input.Type).Valid() {
		v.Add("type", "type must be one of "+joinVehicleTypes())
	}
	if input.Year != nil {
		maxYear := domain.MaxVehicleYear(s.now())
		if *input.Year < domain.MinVehicleYear || *input.Year > maxYear {
			v.Add("year", fmt.Sprintf("year must be between %d and %d", domain.MinVehicleYear, maxYear))
		}
	}
	return collectValidation(input, v)
}

func trimVehicleInput(in domain.VehicleInput) domain.VehicleInput {
	in.Name = trimPtr(in.Name)
	in.Brand = trimPtr(in.Brand)
	in.Model = trimPtr(in.Model)
	in.Type = trimPtr(in.Type)
	in.EngineCapacity = trimPtr(in.EngineCapacity)
	in.PlateNumber = trimPtr(in.PlateNumber)
	in.Color = trimPtr(in.Color)
	return in
}

func joinVehicleTypes() string {
	names := make([]string, 0, len(domain.VehicleTypes))
	for _, t := range domain.VehicleTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
