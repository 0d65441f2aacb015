package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// DuplicateError reports a unique-constraint violation with the offending
// wire field name, so the controller layer can enumerate it like any other
// validation failure.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "already exists: " + e.Field
}

const uniqueViolation = "23505"

// mapDuplicate converts a postgres unique violation into a DuplicateError,
// resolving the field from the constraint name. Other errors pass through.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "user_name"):
		return &DuplicateError{Field: "user_name"}
	case strings.Contains(pgErr.ConstraintName, "email"):
		return &DuplicateError{Field: "email"}
	default:
		return &DuplicateError{Field: pgErr.ConstraintName}
	}
}
