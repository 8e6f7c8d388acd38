package store

import (
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes the registry reacts to.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
	CodeCheckViolation      = "23514"
)

// Code returns the SQLSTATE of a Postgres error, or "" for any other error.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique or primary key violation.
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsUnavailable reports whether err means the session is gone rather than the
// statement being rejected.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrNotConnected) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	// Class 08: connection exception
	code := Code(err)
	return len(code) == 5 && code[:2] == "08"
}
