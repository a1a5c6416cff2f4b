package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func pgErr(code string) error {
	return &pgconn.PgError{Code: code, Message: "constraint violated"}
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, IsUniqueViolation(pgErr("23505")))
	require.False(t, IsUniqueViolation(pgErr("23503")))
	require.False(t, IsUniqueViolation(errors.New("plain error")))
	require.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	require.True(t, IsForeignKeyViolation(pgErr("23503")))
	require.False(t, IsForeignKeyViolation(pgErr("23505")))
}

func TestIsCheckViolation(t *testing.T) {
	require.True(t, IsCheckViolation(pgErr("23514")))
	require.False(t, IsCheckViolation(pgErr("23502")))
}

func TestIsNotNullViolation(t *testing.T) {
	require.True(t, IsNotNullViolation(pgErr("23502")))
	require.False(t, IsNotNullViolation(pgErr("23514")))
}

func TestClassificationUnwrapsErrors(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", pgErr("23505"))
	require.True(t, IsUniqueViolation(wrapped))
}
