package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPaymentRejectsUnknownMethod(t *testing.T) {
	newMockDB(t)

	c, rec := newTestContext(t, http.MethodPost, `{"method":"cheque"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, CreateOrderPayment(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderPaymentDuplicate(t *testing.T) {
	mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "status", "order_date", "shipping_address_id",
			"total_amount", "created_at", "updated_at",
		}).AddRow(1, 1, "pending", now, nil, "901.00", now, now))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodPost, `{"method":"credit_card"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, CreateOrderPayment(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
