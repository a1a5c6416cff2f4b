package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserRestrictedWhileOrdersExist(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodDelete, "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, DeleteUser(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodDelete, "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, DeleteUser(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterRejectsMissingCredentials(t *testing.T) {
	newMockDB(t)

	c, rec := newTestContext(t, http.MethodPost, `{"email":"","password":""}`)

	require.NoError(t, Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodPost,
		`{"email":"demo@example.com","password":"hunter2-hunter2"}`)

	require.NoError(t, Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
