package service

import (
	"context"
	"strings"
	"time"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminSeedInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin superadmin"`
}

type AdminAuthResult struct {
	Admin     *domain.AdminUser
	Token     string
	ExpiresAt time.Time
}

type AdminAuthService struct {
	admins ports.AdminUserRepository
	jwt    *util.JWTManager
}

func NewAdminAuthService(adminRepo ports.AdminUserRepository, jwtManager *util.JWTManager) *AdminAuthService {
	return &AdminAuthService{admins: adminRepo, jwt: jwtManager}
}

func (s *AdminAuthService) Login(ctx context.Context, in AdminLoginInput) (*AdminAuthResult, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	admin, err := s.admins.FindByUsername(ctx, in.Username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.CheckAdminPassword(admin.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.jwt.Generate(util.Subject{ID: admin.ID, Username: admin.Username, Role: string(admin.Role)})
	if err != nil {
		return nil, err
	}
	return &AdminAuthResult{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves an admin token. The role is re-read from the store so
// demotions apply before the token expires.
func (s *AdminAuthService) Authenticate(ctx context.Context, token string) (*domain.AdminUser, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	admin, err := s.admins.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminAuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}

// Seed creates the admin account if the username is free. It reports whether
// a new account was created.
func (s *AdminAuthService) Seed(ctx context.Context, username, password, role string) (*domain.AdminUser, bool, error) {
	in := adminSeedInput{
		Username: strings.ToLower(strings.TrimSpace(username)),
		Password: password,
		Role:     strings.TrimSpace(role),
	}
	if in.Role == "" {
		in.Role = string(domain.AdminRoleAdmin)
	}
	if err := validateStruct(in); err != nil {
		return nil, false, err
	}

	if existing, err := s.admins.FindByUsername(ctx, in.Username); err == nil {
		return existing, false, nil
	} else if !isNotFound(err) {
		return nil, false, err
	}

	hash, err := util.HashAdminPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	admin, err := s.admins.Create(ctx, in.Username, hash, domain.AdminRole(in.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, ErrUsernameTaken
		}
		return nil, false, err
	}
	return admin, true, nil
}
