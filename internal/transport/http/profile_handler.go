package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func RegisterProfile(e *echo.Echo, auth *service.AuthService, profiles *service.ProfileService) {
	h := &ProfileHandler{profiles: profiles}

	group := e.Group("/api/profile", RequireAuth(auth))
	group.GET("", h.get)
	group.POST("/upload-image", h.uploadImage)
	group.PUT("/image", h.setImage)
	group.PUT("/email", h.updateEmail)
	group.PUT("/phone", h.updatePhone)
	group.PUT("/stats", h.updateStats)
}

func (h *ProfileHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	profile, err := h.profiles.Get(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err, "unable to load profile")
	}
	return success(c, http.StatusOK, profile)
}

func (h *ProfileHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	file, closer, err := formFile(c, "image")
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer closer.Close()

	profile, err := h.profiles.UploadImage(c.Request().Context(), user.ID, file)
	if err != nil {
		return writeError(c, err, "unable to upload profile image")
	}
	return profileUpdated(c, profile, "Profile image updated successfully")
}

func (h *ProfileHandler) setImage(c echo.Context) error {
	return h.updateField(c, "profileImage", "Profile image updated successfully",
		func(user *domain.User, value string) (*service.Profile, error) {
			return h.profiles.SetImage(c.Request().Context(), user.ID, value)
		})
}

func (h *ProfileHandler) updateEmail(c echo.Context) error {
	return h.updateField(c, "email", "Email updated successfully",
		func(user *domain.User, value string) (*service.Profile, error) {
			return h.profiles.UpdateEmail(c.Request().Context(), user.ID, value)
		})
}

func (h *ProfileHandler) updatePhone(c echo.Context) error {
	return h.updateField(c, "phone", "Phone number updated successfully",
		func(user *domain.User, value string) (*service.Profile, error) {
			return h.profiles.UpdatePhone(c.Request().Context(), user.ID, value)
		})
}

func (h *ProfileHandler) updateStats(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req service.ProfileStatsInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := h.profiles.UpdateStats(c.Request().Context(), user.ID, req)
	if err != nil {
		return writeError(c, err, "unable to update stats")
	}
	return profileUpdated(c, profile, "Stats updated successfully")
}

// updateField binds a single string field named key and hands it to apply.
func (h *ProfileHandler) updateField(c echo.Context, key, message string, apply func(*domain.User, string) (*service.Profile, error)) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req map[string]any
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	value, _ := req[key].(string)
	profile, err := apply(user, value)
	if err != nil {
		return writeError(c, err, "unable to update profile")
	}
	return profileUpdated(c, profile, message)
}

func profileUpdated(c echo.Context, profile *service.Profile, message string) error {
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": message, "data": profile})
}
