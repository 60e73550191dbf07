package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type SavedDestinationService struct {
	saved        ports.SavedDestinationRepository
	destinations ports.DestinationRepository
}

func NewSavedDestinationService(savedRepo ports.SavedDestinationRepository, destinationRepo ports.DestinationRepository) *SavedDestinationService {
	return &SavedDestinationService{
		saved:        savedRepo,
		destinations: destinationRepo,
	}
}

// Toggle saves the destination for the user, or removes it when it is
// already saved. Racing toggles resolve to one of the two states without
// surfacing a duplicate error.
func (s *SavedDestinationService) Toggle(ctx context.Context, userID, destinationID uuid.UUID) (*domain.SavedToggle, error) {
	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	result, err := s.saved.Toggle(ctx, userID, destinationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return result, nil
}

func (s *SavedDestinationService) IsSaved(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	return s.saved.Exists(ctx, userID, destinationID)
}

func (s *SavedDestinationService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.SavedDestinationItem, domain.Page, error) {
	page, limit, offset := domain.NormalizePage(page, limit)

	items, err := s.saved.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.Page{}, err
	}
	total, err := s.saved.CountByUser(ctx, userID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return items, domain.NewPage(page, limit, total), nil
}

func (s *SavedDestinationService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.saved.CountByUser(ctx, userID)
}

func (s *SavedDestinationService) CountForDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	return s.saved.CountByDestination(ctx, destinationID)
}
