package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// GoogleProfile is the subset of a verified Google ID token we rely on.
type GoogleProfile struct {
	Email    string
	Name     string
	Picture  string
	Verified bool
}

type googleVerifier func(ctx context.Context, token, audience string) (*GoogleProfile, error)

type AuthService struct {
	users       ports.UserRepository
	jwt         *util.JWTManager
	audience    string
	verifyToken googleVerifier
}

func NewAuthService(userRepo ports.UserRepository, jwtManager *util.JWTManager, googleAudience string) *AuthService {
	return &AuthService{
		users:       userRepo,
		jwt:         jwtManager,
		audience:    strings.TrimSpace(googleAudience),
		verifyToken: verifyGoogleIDToken,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	verr := &domain.ValidationError{}
	if err := util.ValidatePassword(in.Password); err != nil {
		verr.Add("password", err.Error())
	}
	if err := collectValidation(in, verr); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateEmailUser(ctx, in.Name, in.Email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(in.Password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if user.Blocked() {
		return nil, ErrUserBlocked
	}
	return s.issue(user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domain.NewValidationError("idToken", "idToken is required")
	}
	profile, err := s.verifyToken(ctx, idToken, s.audience)
	if err != nil || profile.Email == "" {
		return nil, ErrInvalidCredentials
	}
	if !profile.Verified {
		return nil, ErrInvalidCredentials
	}
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	var picture *string
	if profile.Picture != "" {
		picture = &profile.Picture
	}
	user, err := s.users.UpsertGoogleUser(ctx, email, name, picture)
	if err != nil {
		return nil, err
	}
	if user.Blocked() {
		return nil, ErrUserBlocked
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if user.Blocked() {
		return nil, ErrUserBlocked
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(util.Subject{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func verifyGoogleIDToken(ctx context.Context, token, audience string) (*GoogleProfile, error) {
	if audience == "" {
		return nil, errors.New("google sign-in not configured")
	}
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, err
	}
	profile := &GoogleProfile{}
	profile.Email, _ = payload.Claims["email"].(string)
	profile.Name, _ = payload.Claims["name"].(string)
	profile.Picture, _ = payload.Claims["picture"].(string)
	profile.Verified, _ = payload.Claims["email_verified"].(bool)
	return profile, nil
}
