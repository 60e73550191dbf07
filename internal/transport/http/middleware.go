package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

const (
	contextUserKey   = "auth.user"
	contextTokenKey  = "auth.token"
	contextAdminKey  = "auth.admin"
	adminTokenCookie = "adminToken"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, msg := bearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, util.Error(msg))
			}
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUserBlocked):
					return c.JSON(http.StatusForbidden, util.Error(err.Error()))
				case errors.Is(err, service.ErrUnauthorized):
					return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired token"))
				default:
					c.Logger().Errorf("authenticate user: %v", err)
					return c.JSON(http.StatusInternalServerError, util.Error("unable to verify token"))
				}
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireAdmin accepts the admin token from the adminToken cookie and falls
// back to the Authorization header.
func RequireAdmin(auth *service.AdminAuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(adminTokenCookie); err == nil {
				token = strings.TrimSpace(cookie.Value)
			}
			if token == "" {
				var msg string
				if token, msg = bearerToken(c); token == "" {
					return c.JSON(http.StatusUnauthorized, util.Error(msg))
				}
			}
			admin, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired token"))
				}
				c.Logger().Errorf("authenticate admin: %v", err)
				return c.JSON(http.StatusInternalServerError, util.Error("unable to verify token"))
			}
			c.Set(contextAdminKey, admin)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireRole must run after RequireAdmin.
func RequireRole(roles ...domain.AdminRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, ok := CurrentAdmin(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			if !admin.HasRole(roles...) {
				return c.JSON(http.StatusForbidden, util.Error("insufficient permissions"))
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

func CurrentAdmin(c echo.Context) (*domain.AdminUser, bool) {
	admin, ok := c.Get(contextAdminKey).(*domain.AdminUser)
	return admin, ok && admin != nil
}

func bearerToken(c echo.Context) (string, string) {
	header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if header == "" {
		return "", "missing authorization header"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "invalid authorization header"
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", "invalid authorization header"
	}
	return token, ""
}
