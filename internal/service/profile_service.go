package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

type Profile struct {
	*domain.User
	MemberSince string `json:"memberSince"`
}

type ProfileStatsInput struct {
	TripsCompleted       *int    `json:"tripsCompleted" validate:"omitempty,gte=0"`
	FavoriteDestinations *int    `json:"favoriteDestinations" validate:"omitempty,gte=0"`
	TotalDistance        *string `json:"totalDistance" validate:"omitempty,max=50"`
}

type profileEmailInput struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type profilePhoneInput struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type profileImageInput struct {
	ProfileImage string `json:"profileImage" validate:"required,url"`
}

type ProfileService struct {
	users   ports.UserRepository
	uploads *UploadService
}

func NewProfileService(userRepo ports.UserRepository, uploads *UploadService) *ProfileService {
	return &ProfileService{users: userRepo, uploads: uploads}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return newProfile(user), nil
}

// UploadImage stores a new avatar and points the profile at it.
func (s *ProfileService) UploadImage(ctx context.Context, userID uuid.UUID, file FileUpload) (*Profile, error) {
	stored, err := s.uploads.UploadImage(ctx, FolderProfiles, file)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, userID, domain.UserUpdate{ProfileImage: &stored.URL})
}

// SetImage points the profile at an image that was uploaded elsewhere.
func (s *ProfileService) SetImage(ctx context.Context, userID uuid.UUID, imageURL string) (*Profile, error) {
	in := profileImageInput{ProfileImage: strings.TrimSpace(imageURL)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, domain.UserUpdate{ProfileImage: &in.ProfileImage})
}

func (s *ProfileService) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) (*Profile, error) {
	in := profileEmailInput{Email: strings.ToLower(strings.TrimSpace(email))}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.users.UpdateEmail(ctx, userID, in.Email)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrEmailTaken
		case isNotFound(err):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return newProfile(user), nil
}

func (s *ProfileService) UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) (*Profile, error) {
	in := profilePhoneInput{Phone: strings.TrimSpace(phone)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, domain.UserUpdate{Phone: &in.Phone})
}

func (s *ProfileService) UpdateStats(ctx context.Context, userID uuid.UUID, in ProfileStatsInput) (*Profile, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	update := domain.UserUpdate{
		TripsCompleted:       in.TripsCompleted,
		FavoriteDestinations: in.FavoriteDestinations,
		TotalDistance:        trimPtr(in.TotalDistance),
	}
	if update.Empty() {
		return s.Get(ctx, userID)
	}
	return s.update(ctx, userID, update)
}

func (s *ProfileService) update(ctx context.Context, userID uuid.UUID, update domain.UserUpdate) (*Profile, error) {
	user, err := s.users.Update(ctx, userID, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return newProfile(user), nil
}

func newProfile(user *domain.User) *Profile {
	return &Profile{User: user, MemberSince: user.MemberSince()}
}
