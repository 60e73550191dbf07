package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type DestinationQuery struct {
	Query    string
	Category string
	Tag      string
	Page     int
	Limit    int
}

type DestinationDetail struct {
	Destination *domain.Destination
	Ratings     []domain.Rating
}

type DestinationService struct {
	destinations ports.DestinationRepository
	ratings      ports.RatingRepository
}

func NewDestinationService(destRepo ports.DestinationRepository, ratingRepo ports.RatingRepository) *DestinationService {
	return &DestinationService{destinations: destRepo, ratings: ratingRepo}
}

func (s *DestinationService) List(ctx context.Context, q DestinationQuery) ([]domain.Destination, domain.Page, error) {
	category := strings.TrimSpace(q.Category)
	if category != "" && !domain.DestinationCategory(category).Valid() {
		return nil, domain.Page{}, domain.NewValidationError("category", "unknown category "+category)
	}
	page, limit, offset := domain.NormalizePage(q.Page, q.Limit)
	items, total, err := s.destinations.List(ctx, domain.DestinationListFilter{
		Query:    strings.TrimSpace(q.Query),
		Category: category,
		Tag:      strings.TrimSpace(q.Tag),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, domain.Page{}, err
	}
	return items, domain.NewPage(page, limit, total), nil
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

// GetWithRatings returns the destination and its ratings, newest first.
func (s *DestinationService) GetWithRatings(ctx context.Context, id uuid.UUID) (*DestinationDetail, error) {
	dest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DestinationDetail{Destination: dest, Ratings: ratings}, nil
}

// Create stores a new destination. Its average always starts at 0; only the
// rating maintainer changes it afterwards.
func (s *DestinationService) Create(ctx context.Context, input domain.DestinationInput) (*domain.Destination, error) {
	if err := input.Validate(false); err != nil {
		return nil, err
	}
	dest := &domain.Destination{
		Name:        strings.TrimSpace(*input.Name),
		PhotoMain:   strings.TrimSpace(*input.PhotoMain),
		PhotoOthers: pq.StringArray(cleanList(input.PhotoOthers)),
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Category:    domain.DestinationCategory(strings.TrimSpace(*input.Category)),
		Description: trimOrEmpty(input.Description),
		Address:     trimOrEmpty(input.Address),
		Tags:        pq.StringArray(cleanList(input.Tags)),
	}
	return s.destinations.Create(ctx, dest)
}

func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, input domain.DestinationInput) (*domain.Destination, error) {
	if err := input.Validate(true); err != nil {
		return nil, err
	}
	input.Name = trimPtr(input.Name)
	input.PhotoMain = trimPtr(input.PhotoMain)
	input.Category = trimPtr(input.Category)
	if input.PhotoOthers != nil {
		cleaned := cleanList(input.PhotoOthers)
		input.PhotoOthers = &cleaned
	}
	if input.Tags != nil {
		cleaned := cleanList(input.Tags)
		input.Tags = &cleaned
	}
	updated, err := s.destinations.Update(ctx, id, input)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the destination with its ratings and bookmarks atomically.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.DeleteCascade(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

func cleanList(values *[]string) []string {
	out := []string{}
	if values == nil {
		return out
	}
	for _, v := range *values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func trimOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
