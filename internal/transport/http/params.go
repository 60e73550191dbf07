package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parsePage reads page and limit. Missing values fall back to the defaults
// applied by domain.NormalizePage.
func parsePage(c echo.Context) (int, int, error) {
	v := &domain.ValidationError{}
	page := queryInt(c, "page", v)
	limit := queryInt(c, "limit", v)
	if err := v.Err(); err != nil {
		return 0, 0, err
	}
	return derefInt(page), derefInt(limit), nil
}

func queryInt(c echo.Context, name string, v *domain.ValidationError) *int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(name, name+" must be an integer")
		return nil
	}
	return &n
}

func queryBool(c echo.Context, name string, v *domain.ValidationError) *bool {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		v.Add(name, name+" must be true or false")
		return nil
	}
	return &b
}

func queryUUID(c echo.Context, name string, v *domain.ValidationError) *uuid.UUID {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		v.Add(name, name+" must be a valid id")
		return nil
	}
	return &id
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
