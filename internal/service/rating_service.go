package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

// RatingInput is a rating as received from a client. Value stays a float so
// that fractional submissions can be rejected here rather than truncated by a
// decoder.
type RatingInput struct {
	Value   float64
	Comment *string
	// Media nil keeps whatever an existing rating already has.
	Media *[]domain.RatingMedia
}

type RatingUpdate struct {
	Value   *float64
	Comment *string
}

type ReconcileReport struct {
	Checked int `json:"checked"`
	Failed  int `json:"failed"`
}

// RatingService owns every write to ratings and keeps each destination's
// averageRating equal to the rounded mean of its ratings. Nothing else writes
// destination.average_rating.
type RatingService struct {
	ratings      ports.RatingRepository
	destinations ports.DestinationRepository
	log          logrus.FieldLogger
}

func NewRatingService(ratings ports.RatingRepository, destinations ports.DestinationRepository, log logrus.FieldLogger) *RatingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RatingService{
		ratings:      ratings,
		destinations: destinations,
		log:          log.WithField("component", "rating_maintainer"),
	}
}

func (s *RatingService) UpsertRating(ctx context.Context, destinationID, userID uuid.UUID, input RatingInput) (*domain.RatingUpsert, error) {
	value, comment, err := validateRatingInput(&input.Value, input.Comment, input.Media)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDestination(ctx, destinationID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		DestinationID: destinationID,
		UserID:        userID,
		Rating:        *value,
		Comment:       valueOrEmpty(comment),
		Media:         domain.RatingMediaList{},
	}
	replaceMedia := input.Media != nil
	if replaceMedia {
		rating.Media = append(domain.RatingMediaList{}, (*input.Media)...)
	}

	result, err := s.ratings.Upsert(ctx, rating, replaceMedia)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	s.recomputeBestEffort(ctx, destinationID)
	return result, nil
}

// UpdateRating applies an admin edit. Only the value and the comment can change.
func (s *RatingService) UpdateRating(ctx context.Context, ratingID uuid.UUID, update RatingUpdate) (*domain.Rating, error) {
	if update.Value == nil && update.Comment == nil {
		return nil, domain.NewValidationError("rating", "nothing to update")
	}
	value, comment, err := validateRatingInput(update.Value, update.Comment, nil)
	if err != nil {
		return nil, err
	}

	updated, err := s.ratings.Update(ctx, ratingID, value, comment)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	s.recomputeBestEffort(ctx, updated.DestinationID)
	return updated, nil
}

// DeleteRating removes a rating regardless of its owner.
func (s *RatingService) DeleteRating(ctx context.Context, ratingID uuid.UUID) error {
	rating, err := s.GetRating(ctx, ratingID)
	if err != nil {
		return err
	}
	return s.delete(ctx, rating)
}

// DeleteOwnRating removes a rating on behalf of its author.
func (s *RatingService) DeleteOwnRating(ctx context.Context, ratingID, userID uuid.UUID) error {
	rating, err := s.GetRating(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.UserID != userID {
		return ErrRatingForbidden
	}
	return s.delete(ctx, rating)
}

func (s *RatingService) delete(ctx context.Context, rating *domain.Rating) error {
	if err := s.ratings.Delete(ctx, rating.ID); err != nil {
		if isNotFound(err) {
			return ErrRatingNotFound
		}
		return err
	}
	s.recomputeBestEffort(ctx, rating.DestinationID)
	return nil
}

func (s *RatingService) GetRating(ctx context.Context, ratingID uuid.UUID) (*domain.Rating, error) {
	rating, err := s.ratings.GetByID(ctx, ratingID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Rating, error) {
	return s.ratings.ListByDestination(ctx, destinationID)
}

func (s *RatingService) List(ctx context.Context, filter domain.RatingFilter) ([]domain.Rating, int64, error) {
	if filter.Min != nil && filter.Max != nil && *filter.Min > *filter.Max {
		return nil, 0, domain.NewValidationError("min", "min cannot be greater than max")
	}
	return s.ratings.List(ctx, filter)
}

// Recompute derives the destination's average from its current ratings and
// stores it. Concurrent recomputes are last-writer-wins; each one reads the
// committed ratings so the final write is always a correct value.
func (s *RatingService) Recompute(ctx context.Context, destinationID uuid.UUID) (float64, error) {
	totals, err := s.ratings.TotalsByDestination(ctx, destinationID)
	if err != nil {
		return 0, fmt.Errorf("rating totals for %s: %w", destinationID, err)
	}
	average := domain.AverageRating(totals.Sum, totals.Count)
	if err := s.destinations.SetAverageRating(ctx, destinationID, average); err != nil {
		if isNotFound(err) {
			return 0, ErrDestinationNotFound
		}
		return 0, fmt.Errorf("store average for %s: %w", destinationID, err)
	}
	return average, nil
}

// RecomputeMany is used after bulk removals such as deleting a user.
func (s *RatingService) RecomputeMany(ctx context.Context, destinationIDs []uuid.UUID) {
	for _, id := range destinationIDs {
		s.recomputeBestEffort(ctx, id)
	}
}

// ReconcileAll recomputes every destination. It repairs averages left stale by
// a recompute that failed after its rating write had already committed.
func (s *RatingService) ReconcileAll(ctx context.Context) (ReconcileReport, error) {
	ids, err := s.destinations.ListIDs(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}
	report := ReconcileReport{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		if _, err := s.Recompute(ctx, id); err != nil {
			report.Failed++
			s.log.WithError(err).WithField("destination_id", id).Warn("reconcile recompute failed")
		}
	}
	s.log.WithFields(logrus.Fields{"checked": report.Checked, "failed": report.Failed}).Info("rating reconcile finished")
	return report, nil
}

// recomputeBestEffort never fails the caller: the rating write has already
// committed and the next write or reconcile sweep repairs the average.
func (s *RatingService) recomputeBestEffort(ctx context.Context, destinationID uuid.UUID) {
	if _, err := s.Recompute(ctx, destinationID); err != nil {
		s.log.WithError(err).WithField("destination_id", destinationID).Error("average rating recompute failed")
	}
}

func (s *RatingService) ensureDestination(ctx context.Context, destinationID uuid.UUID) error {
	if destinationID == uuid.Nil {
		return ErrDestinationNotFound
	}
	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

func validateRatingInput(value *float64, comment *string, media *[]domain.RatingMedia) (*int, *string, error) {
	v := &domain.ValidationError{}

	var intValue *int
	if value != nil {
		raw := *value
		if raw < domain.MinRatingValue || raw > domain.MaxRatingValue || raw != math.Trunc(raw) {
			v.Add("rating", fmt.Sprintf("rating must be a whole number between %d and %d", domain.MinRatingValue, domain.MaxRatingValue))
		} else {
			n := int(raw)
			intValue = &n
		}
	}

	var trimmed *string
	if comment != nil {
		c := strings.TrimSpace(*comment)
		if len([]rune(c)) > domain.MaxRatingComment {
			v.Add("comment", fmt.Sprintf("comment cannot exceed %d characters", domain.MaxRatingComment))
		}
		trimmed = &c
	}

	if media != nil {
		items := *media
		if len(items) > domain.MaxRatingMediaAttached {
			v.Add("media", fmt.Sprintf("at most %d media items are allowed", domain.MaxRatingMediaAttached))
		}
		for i, item := range items {
			field := fmt.Sprintf("media[%d]", i)
			switch {
			case strings.TrimSpace(item.URL) == "":
				v.Add(field, "url is required")
			case strings.TrimSpace(item.PublicID) == "":
				v.Add(field, "publicId is required")
			case item.Type != domain.MediaKindImage && item.Type != domain.MediaKindVideo:
				v.Add(field, "type must be image or video")
			}
		}
	}

	if err := v.Err(); err != nil {
		return nil, nil, err
	}
	return intValue, trimmed, nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
