// Package pgrepos implements the domain repositories on PostgreSQL via sqlx.
package pgrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// uniqueViolation is the postgres error code for unique-constraint breaches.
const uniqueViolation = pq.ErrorCode("23505")

// isUniqueViolation reports whether err is a unique-constraint breach,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint ...string) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	if !ok || pqErr.Code != uniqueViolation {
		return false
	}
	if len(constraint) > 0 {
		return pqErr.Constraint == constraint[0]
	}
	return true
}

// trapNoRows maps sql.ErrNoRows to the domain notFound error.
func trapNoRows(err, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}
