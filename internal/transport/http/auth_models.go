package http

import (
	"time"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

// AuthTokenResponse is returned by endpoints that issue user tokens.
type AuthTokenResponse struct {
	Success   bool         `json:"success" example:"true"`
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time    `json:"expiresAt" example:"2025-03-08T09:30:00Z"`
	User      *domain.User `json:"user"`
}

// AdminTokenResponse is returned by the admin login. The token is also set as
// the adminToken cookie.
type AdminTokenResponse struct {
	Success   bool              `json:"success" example:"true"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Admin     *domain.AdminUser `json:"admin"`
}

// GoogleLoginRequest carries the Google ID token for login.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
