package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by Postgres for constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a uniqueness constraint violation
// (duplicate email, SKU, category name, or a second payment for an order).
func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a referential-integrity
// violation, raised for restricted deletes while dependent rows exist.
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// IsCheckViolation reports whether err is a check constraint violation
// (negative price, out-of-range rating, non-positive quantity).
func IsCheckViolation(err error) bool {
	return pgErrorCode(err) == codeCheckViolation
}

// IsNotNullViolation reports whether err is a not-null constraint violation.
func IsNotNullViolation(err error) bool {
	return pgErrorCode(err) == codeNotNullViolation
}
