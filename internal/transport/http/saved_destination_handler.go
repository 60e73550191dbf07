package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type SavedDestinationHandler struct {
	saved *service.SavedDestinationService
}

func RegisterSavedDestinations(e *echo.Echo, auth *service.AuthService, saved *service.SavedDestinationService) {
	h := &SavedDestinationHandler{saved: saved}

	e.GET("/api/saved-destinations/count/:destinationId", h.countForDestination)

	group := e.Group("/api/saved-destinations", RequireAuth(auth))
	group.GET("", h.list)
	group.POST("/:destinationId", h.toggle)
	group.GET("/check/:destinationId", h.check)
	group.GET("/user/count", h.countForUser)
}

func (h *SavedDestinationHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	page, limit, err := parsePage(c)
	if err != nil {
		return writeError(c, err, "unable to list saved destinations")
	}
	items, meta, err := h.saved.List(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return writeError(c, err, "unable to list saved destinations")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"success":    true,
		"data":       toSavedResponses(items),
		"pagination": meta,
	})
}

func (h *SavedDestinationHandler) toggle(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	destinationID, err := parseIDParam(c, "destinationId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.saved.Toggle(c.Request().Context(), user.ID, destinationID)
	if err != nil {
		return writeError(c, err, "unable to update saved destination")
	}
	message := "Destination removed from saved list"
	if result.IsSaved {
		message = "Destination saved successfully"
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": message, "isSaved": result.IsSaved})
}

func (h *SavedDestinationHandler) check(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	destinationID, err := parseIDParam(c, "destinationId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	saved, err := h.saved.IsSaved(c.Request().Context(), user.ID, destinationID)
	if err != nil {
		return writeError(c, err, "unable to check saved destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "isSaved": saved})
}

func (h *SavedDestinationHandler) countForDestination(c echo.Context) error {
	destinationID, err := parseIDParam(c, "destinationId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	count, err := h.saved.CountForDestination(c.Request().Context(), destinationID)
	if err != nil {
		return writeError(c, err, "unable to count saved destinations")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "count": count})
}

func (h *SavedDestinationHandler) countForUser(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	count, err := h.saved.CountForUser(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err, "unable to count saved destinations")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "count": count})
}
