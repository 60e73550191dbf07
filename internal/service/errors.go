package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrRatingNotFound      = errors.New("rating not found")
	ErrRatingForbidden     = errors.New("not allowed to manage this rating")
	ErrUserNotFound        = errors.New("user not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrAdminNotFound       = errors.New("admin user not found")
	ErrEmailTaken          = errors.New("email already in use")
	ErrUsernameTaken       = errors.New("username already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserBlocked         = errors.New("account is blocked")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUploadTooLarge      = errors.New("file exceeds maximum size")
	ErrUploadUnsupported   = errors.New("unsupported file type")
	ErrUploadEmpty         = errors.New("file is empty")
	ErrStorageUnavailable  = errors.New("media storage not configured")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
