package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

const contextLoggerKey = "log.entry"

// errorStatus maps service errors onto HTTP statuses. Zero means the error is
// not a known client error.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrUploadEmpty),
		errors.Is(err, service.ErrUploadUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDestinationNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserBlocked),
		errors.Is(err, service.ErrRatingForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, service.ErrMetricsUnavailable):
		return http.StatusServiceUnavailable
	}
	return 0
}

// writeError answers with the mapped status. Unknown errors are logged and
// hidden behind fallback.
func writeError(c echo.Context, err error, fallback string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, util.Error(domain.ErrValidation.Error()).With("fields", verr.Fields))
	}
	if status := errorStatus(err); status != 0 {
		if status == http.StatusServiceUnavailable {
			requestLog(c).WithError(err).Warn(fallback)
		}
		return c.JSON(status, util.Error(err.Error()))
	}
	requestLog(c).WithError(err).Error(fallback)
	return c.JSON(http.StatusInternalServerError, util.Error(fallback))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, util.Error(msg))
}

func requestLog(c echo.Context) logrus.FieldLogger {
	if entry, ok := c.Get(contextLoggerKey).(logrus.FieldLogger); ok && entry != nil {
		return entry
	}
	return logrus.StandardLogger()
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(status, util.Envelope{"success": true, "data": data})
}

// paginated renders an admin listing: {success, <key>: items, pagination}.
func paginated(c echo.Context, key string, items any, page domain.Page) error {
	return c.JSON(http.StatusOK, util.Envelope{"success": true, key: items, "pagination": page})
}
