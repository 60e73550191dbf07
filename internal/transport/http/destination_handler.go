package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
	ratings      *service.RatingService
}

func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destinations *service.DestinationService, ratings *service.RatingService) {
	h := &DestinationHandler{destinations: destinations, ratings: ratings}

	public := e.Group("/api/destinations")
	public.GET("", h.list)
	public.GET("/:id", h.get)
	public.GET("/:id/ratings", h.listRatings)

	protected := e.Group("/api/destinations", RequireAuth(auth))
	protected.POST("", h.create)
	protected.POST("/:id/ratings", h.rate)

	owner := e.Group("/api/ratings", RequireAuth(auth))
	owner.DELETE("/:id", h.deleteOwnRating)
}

func (h *DestinationHandler) list(c echo.Context) error {
	query, err := parseDestinationQuery(c)
	if err != nil {
		return writeError(c, err, "unable to list destinations")
	}
	items, page, err := h.destinations.List(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "unable to list destinations")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success":    true,
		"count":      len(items),
		"data":       toDestinationResponses(items),
		"pagination": page,
	})
}

func (h *DestinationHandler) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	detail, err := h.destinations.GetWithRatings(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to load destination")
	}
	return success(c, http.StatusOK, echo.Map{
		"destination": toDestinationResponse(detail.Destination),
		"ratings":     toRatingResponses(detail.Ratings),
	})
}

func (h *DestinationHandler) create(c echo.Context) error {
	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	dest, err := h.destinations.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err, "unable to create destination")
	}
	return success(c, http.StatusCreated, toDestinationResponse(dest))
}

func (h *DestinationHandler) listRatings(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	ratings, err := h.ratings.ListByDestination(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "unable to list ratings")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success": true,
		"count":   len(ratings),
		"data":    toRatingResponses(ratings),
	})
}

// rate creates the caller's rating or overwrites the one they already left.
func (h *DestinationHandler) rate(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.ratings.UpsertRating(c.Request().Context(), id, user.ID, service.RatingInput{
		Value:   req.Rating,
		Comment: req.Comment,
		Media:   req.Media,
	})
	if err != nil {
		return writeError(c, err, "unable to save rating")
	}

	status, message := http.StatusOK, "Rating updated successfully"
	if result.Created {
		status, message = http.StatusCreated, "Rating added successfully"
	}
	return c.JSON(status, util.Envelope{
		"success": true,
		"data":    toRatingResponse(result.Rating),
		"message": message,
	})
}

func (h *DestinationHandler) deleteOwnRating(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.ratings.DeleteOwnRating(c.Request().Context(), id, user.ID); err != nil {
		return writeError(c, err, "unable to delete rating")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Rating deleted successfully"})
}

func parseDestinationQuery(c echo.Context) (service.DestinationQuery, error) {
	page, limit, err := parsePage(c)
	if err != nil {
		return service.DestinationQuery{}, err
	}
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		query = strings.TrimSpace(c.QueryParam("search"))
	}
	return service.DestinationQuery{
		Query:    query,
		Category: strings.TrimSpace(c.QueryParam("category")),
		Tag:      strings.TrimSpace(c.QueryParam("tag")),
		Page:     page,
		Limit:    limit,
	}, nil
}
