package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	h := &AuthHandler{auth: auth}

	group := e.Group("/api/auth")
	group.POST("/register", h.register)
	group.POST("/login", h.login)
	group.POST("/google", h.google)
	group.GET("/me", h.me, RequireAuth(auth))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err, "unable to register")
	}
	return c.JSON(http.StatusCreated, tokenResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err, "unable to login")
	}
	return c.JSON(http.StatusOK, tokenResponse(result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil || req.IDToken == "" {
		return badRequest(c, "idToken is required")
	}
	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return writeError(c, err, "unable to login with google")
	}
	return c.JSON(http.StatusOK, tokenResponse(result))
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "user": user})
}

func tokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	}
}
