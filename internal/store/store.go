// Package store persists employees and users through gorm.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"employee-management-api/internal/apperror"
)

// ErrNotFound is returned when a record looked up by key does not exist.
var ErrNotFound = errors.New("record not found")

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "resource with the same unique attributes already exists")
		}
		if pgErr.Code == "23503" {
			return apperror.New(apperror.CodeValidation, "invalid foreign key reference")
		}
	}
	return err
}
