package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type UserQuery struct {
	Query    string
	Verified *bool
	Status   string
	Page     int
	Limit    int
}

// UserPatch is the admin-editable subset of a user.
type UserPatch struct {
	Name                 *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone                *string `json:"phone" validate:"omitempty,phone"`
	Location             *string `json:"location" validate:"omitempty,max=100"`
	TripsCompleted       *int    `json:"tripsCompleted" validate:"omitempty,gte=0"`
	FavoriteDestinations *int    `json:"favoriteDestinations" validate:"omitempty,gte=0"`
	TotalDistance        *string `json:"totalDistance" validate:"omitempty,max=50"`
	IsVerified           *bool   `json:"isVerified"`
}

type UserAdminService struct {
	users   ports.UserRepository
	ratings ports.RatingRepository
	saved   *SavedDestinationService
	rater   *RatingService
	log     logrus.FieldLogger
}

func NewUserAdminService(userRepo ports.UserRepository, ratingRepo ports.RatingRepository, saved *SavedDestinationService, rater *RatingService, log logrus.FieldLogger) *UserAdminService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UserAdminService{users: userRepo, ratings: ratingRepo, saved: saved, rater: rater, log: log}
}

func (s *UserAdminService) List(ctx context.Context, q UserQuery) ([]domain.User, domain.Page, error) {
	filter := domain.UserFilter{Query: strings.TrimSpace(q.Query), Verified: q.Verified}
	if status := strings.TrimSpace(q.Status); status != "" {
		st := domain.UserStatus(status)
		if !st.Valid() {
			return nil, domain.Page{}, domain.NewValidationError("status", "status must be active or blocked")
		}
		filter.Status = &st
	}
	page, limit, offset := domain.NormalizePage(q.Page, q.Limit)
	filter.Limit, filter.Offset = limit, offset

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return users, domain.NewPage(page, limit, total), nil
}

func (s *UserAdminService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*domain.User, error) {
	patch.Name = trimPtr(patch.Name)
	patch.Phone = trimPtr(patch.Phone)
	patch.Location = trimPtr(patch.Location)
	patch.TotalDistance = trimPtr(patch.TotalDistance)
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	update := domain.UserUpdate{
		Name:                 patch.Name,
		Phone:                patch.Phone,
		Location:             patch.Location,
		TripsCompleted:       patch.TripsCompleted,
		FavoriteDestinations: patch.FavoriteDestinations,
		TotalDistance:        patch.TotalDistance,
		IsVerified:           patch.IsVerified,
	}
	if update.Empty() {
		return s.Get(ctx, id)
	}
	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) Block(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusBlocked)
}

func (s *UserAdminService) Unblock(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusActive)
}

func (s *UserAdminService) setStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	user, err := s.users.SetStatus(ctx, id, status)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) SavedDestinations(ctx context.Context, id uuid.UUID, page, limit int) ([]domain.SavedDestinationItem, domain.Page, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, domain.Page{}, err
	}
	return s.saved.List(ctx, id, page, limit)
}

// Delete removes the user together with their ratings, bookmarks and
// vehicles, then recomputes every destination the user had rated.
func (s *UserAdminService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	affected, err := s.ratings.DestinationIDsByUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "rated_destinations": len(affected)}).Info("user deleted")
	s.rater.RecomputeMany(ctx, affected)
	return nil
}
