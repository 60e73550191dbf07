package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type VehicleHandler struct {
	vehicles *service.VehicleService
}

func RegisterVehicles(e *echo.Echo, auth *service.AuthService, vehicles *service.VehicleService) {
	h := &VehicleHandler{vehicles: vehicles}

	group := e.Group("/api/vehicles", RequireAuth(auth))
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.POST("/:id/upload-image", h.uploadImage)
}

func (h *VehicleHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	vehicles, err := h.vehicles.List(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err, "unable to list vehicles")
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return success(c, http.StatusOK, vehicles)
}

func (h *VehicleHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	vehicle, err := h.vehicles.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeError(c, err, "unable to load vehicle")
	}
	return success(c, http.StatusOK, vehicle)
}

func (h *VehicleHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req domain.VehicleInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	vehicle, err := h.vehicles.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return writeError(c, err, "unable to create vehicle")
	}
	return c.JSON(http.StatusCreated, util.Envelope{"success": true, "message": "Vehicle added successfully", "data": vehicle})
}

func (h *VehicleHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req domain.VehicleInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	vehicle, err := h.vehicles.Update(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return writeError(c, err, "unable to update vehicle")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Vehicle updated successfully", "data": vehicle})
}

func (h *VehicleHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.vehicles.Delete(c.Request().Context(), user.ID, id); err != nil {
		return writeError(c, err, "unable to delete vehicle")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Vehicle deleted successfully"})
}

func (h *VehicleHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	file, closer, err := formFile(c, "image")
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer closer.Close()

	vehicle, err := h.vehicles.UploadImage(c.Request().Context(), user.ID, id, file)
	if err != nil {
		return writeError(c, err, "unable to upload vehicle image")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Vehicle image uploaded successfully", "data": vehicle})
}
