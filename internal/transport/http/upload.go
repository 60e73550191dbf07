package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
)

var errMissingFile = errors.New("file is required")

// formFile opens the multipart file stored under field. The caller closes the
// returned closer once the upload has been consumed.
func formFile(c echo.Context, field string) (service.FileUpload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return service.FileUpload{}, nil, fmt.Errorf("%w: %s", errMissingFile, field)
		}
		return service.FileUpload{}, nil, fmt.Errorf("invalid multipart payload: %w", err)
	}
	file, err := header.Open()
	if err != nil {
		return service.FileUpload{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return service.FileUpload{
		Reader:      file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
	}, file, nil
}

type UploadHandler struct {
	uploads *service.UploadService
}

func RegisterUploads(e *echo.Echo, auth *service.AuthService, uploads *service.UploadService) {
	h := &UploadHandler{uploads: uploads}
	group := e.Group("/api/uploads", RequireAuth(auth))
	group.POST("/rating-media", h.ratingMedia)
}

// ratingMedia accepts one image or video under the "media" field and returns
// the descriptor the client attaches to its rating.
func (h *UploadHandler) ratingMedia(c echo.Context) error {
	file, closer, err := formFile(c, "media")
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer closer.Close()

	descriptor, err := h.uploads.UploadRatingMedia(c.Request().Context(), file)
	if err != nil {
		return writeError(c, err, "unable to upload media")
	}
	return success(c, http.StatusCreated, descriptor)
}
