package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type AdminAuthHandler struct {
	auth *service.AdminAuthService
}

func RegisterAdminAuth(e *echo.Echo, auth *service.AdminAuthService) {
	h := &AdminAuthHandler{auth: auth}

	group := e.Group("/admin/auth")
	group.POST("/login", h.login)
	group.POST("/logout", h.logout)
	group.GET("/me", h.me, RequireAdmin(auth))
}

func (h *AdminAuthHandler) login(c echo.Context) error {
	var req service.AdminLoginInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err, "unable to login")
	}
	c.SetCookie(adminCookie(c, result.Token, result.ExpiresAt))
	return c.JSON(http.StatusOK, AdminTokenResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Admin:     result.Admin,
	})
}

// logout only clears the cookie; tokens are stateless and expire on their own.
func (h *AdminAuthHandler) logout(c echo.Context) error {
	c.SetCookie(adminCookie(c, "", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Logged out successfully"})
}

func (h *AdminAuthHandler) me(c echo.Context) error {
	admin, ok := CurrentAdmin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "admin": admin})
}

func adminCookie(c echo.Context, token string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     adminTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
