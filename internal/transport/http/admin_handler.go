package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

// AdminServices groups what the dashboard API needs.
type AdminServices struct {
	Auth         *service.AdminAuthService
	Destinations *service.DestinationService
	Users        *service.UserAdminService
	Ratings      *service.RatingService
	Metrics      *service.MetricsService
	Uploads      *service.UploadService
}

type AdminHandler struct {
	svc AdminServices
}

func RegisterAdmin(e *echo.Echo, svc AdminServices) {
	h := &AdminHandler{svc: svc}
	anyAdmin := []echo.MiddlewareFunc{
		RequireAdmin(svc.Auth),
		RequireRole(domain.AdminRoleAdmin, domain.AdminRoleSuperAdmin),
	}

	destinations := e.Group("/admin/destinations", anyAdmin...)
	destinations.GET("", h.listDestinations)
	destinations.GET("/:id", h.getDestination)
	destinations.POST("", h.createDestination)
	destinations.PATCH("/:id", h.updateDestination)
	destinations.DELETE("/:id", h.deleteDestination)

	users := e.Group("/admin/users", anyAdmin...)
	users.GET("", h.listUsers)
	users.GET("/:id", h.getUser)
	users.PATCH("/:id", h.updateUser)
	users.POST("/:id/block", h.blockUser)
	users.POST("/:id/unblock", h.unblockUser)
	users.GET("/:id/saved-destinations", h.userSavedDestinations)
	users.DELETE("/:id", h.deleteUser, RequireRole(domain.AdminRoleSuperAdmin))

	ratings := e.Group("/admin/ratings", anyAdmin...)
	ratings.GET("", h.listRatings)
	ratings.PATCH("/:id", h.updateRating)
	ratings.DELETE("/:id", h.deleteRating)

	metrics := e.Group("/admin/metrics", anyAdmin...)
	metrics.GET("/overview", h.metricsOverview)

	uploads := e.Group("/admin/uploads", anyAdmin...)
	uploads.POST("/image", h.uploadImage)
}

// destinations

func (h *AdminHandler) listDestinations(c echo.Context) error {
	query, err := parseDestinationQuery(c)
	if err != nil {
		return writeError(c, err, "unable to list destinations")
	}
	items, page, err := h.svc.Destinations.List(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "unable to list destinations")
	}
	return paginated(c, "destinations", toDestinationResponses(items), page)
}

func (h *AdminHandler) getDestination(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	dest, err := h.svc.Destinations.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to load destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "destination": toDestinationResponse(dest)})
}

func (h *AdminHandler) createDestination(c echo.Context) error {
	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	dest, err := h.svc.Destinations.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err, "unable to create destination")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"success":     true,
		"message":     "Destination created successfully",
		"destination": toDestinationResponse(dest),
	})
}

func (h *AdminHandler) updateDestination(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	dest, err := h.svc.Destinations.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err, "unable to update destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success":     true,
		"message":     "Destination updated successfully",
		"destination": toDestinationResponse(dest),
	})
}

func (h *AdminHandler) deleteDestination(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.svc.Destinations.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, "unable to delete destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Destination deleted successfully"})
}

// users

func (h *AdminHandler) listUsers(c echo.Context) error {
	v := &domain.ValidationError{}
	page := queryInt(c, "page", v)
	limit := queryInt(c, "limit", v)
	verified := queryBool(c, "verified", v)
	if err := v.Err(); err != nil {
		return writeError(c, err, "unable to list users")
	}
	users, meta, err := h.svc.Users.List(c.Request().Context(), service.UserQuery{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Verified: verified,
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Page:     derefInt(page),
		Limit:    derefInt(limit),
	})
	if err != nil {
		return writeError(c, err, "unable to list users")
	}
	if users == nil {
		users = []domain.User{}
	}
	return paginated(c, "users", users, meta)
}

func (h *AdminHandler) getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.svc.Users.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to load user")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "user": user})
}

func (h *AdminHandler) updateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req service.UserPatch
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.svc.Users.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err, "unable to update user")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "User updated successfully", "user": user})
}

func (h *AdminHandler) blockUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.svc.Users.Block(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to block user")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "User blocked successfully", "user": user})
}

func (h *AdminHandler) unblockUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.svc.Users.Unblock(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to unblock user")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "User unblocked successfully", "user": user})
}

func (h *AdminHandler) userSavedDestinations(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	page, limit, err := parsePage(c)
	if err != nil {
		return writeError(c, err, "unable to list saved destinations")
	}
	items, meta, err := h.svc.Users.SavedDestinations(c.Request().Context(), id, page, limit)
	if err != nil {
		return writeError(c, err, "unable to list saved destinations")
	}
	return paginated(c, "savedDestinations", toSavedResponses(items), meta)
}

func (h *AdminHandler) deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.svc.Users.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, "unable to delete user")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "User deleted successfully"})
}

// ratings

func (h *AdminHandler) listRatings(c echo.Context) error {
	v := &domain.ValidationError{}
	page := queryInt(c, "page", v)
	limit := queryInt(c, "limit", v)
	filter := domain.RatingFilter{
		DestinationID: queryUUID(c, "destinationId", v),
		UserID:        queryUUID(c, "userId", v),
		Min:           queryInt(c, "min", v),
		Max:           queryInt(c, "max", v),
	}
	if err := v.Err(); err != nil {
		return writeError(c, err, "unable to list ratings")
	}

	current, size, offset := domain.NormalizePage(derefInt(page), derefInt(limit))
	filter.Limit, filter.Offset = size, offset
	ratings, total, err := h.svc.Ratings.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err, "unable to list ratings")
	}
	return paginated(c, "ratings", toRatingResponses(ratings), domain.NewPage(current, size, total))
}

func (h *AdminHandler) updateRating(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		Rating  *float64 `json:"rating"`
		Comment *string  `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rating, err := h.svc.Ratings.UpdateRating(c.Request().Context(), id, service.RatingUpdate{
		Value:   req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return writeError(c, err, "unable to update rating")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success": true,
		"message": "Rating updated successfully",
		"rating":  toRatingResponse(rating),
	})
}

func (h *AdminHandler) deleteRating(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.svc.Ratings.DeleteRating(c.Request().Context(), id); err != nil {
		return writeError(c, err, "unable to delete rating")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Rating deleted successfully"})
}

// metrics

func (h *AdminHandler) metricsOverview(c echo.Context) error {
	overview, err := h.svc.Metrics.Overview(c.Request().Context(), strings.TrimSpace(c.QueryParam("range")))
	if err != nil {
		return writeError(c, err, "unable to compute metrics")
	}
	return success(c, http.StatusOK, overview)
}

// uploads

func (h *AdminHandler) uploadImage(c echo.Context) error {
	file, closer, err := formFile(c, "image")
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer closer.Close()

	stored, err := h.svc.Uploads.UploadImage(c.Request().Context(), service.FolderDestinations, file)
	if err != nil {
		return writeError(c, err, "unable to upload image")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success":  true,
		"url":      stored.URL,
		"publicId": stored.PublicID,
	})
}
