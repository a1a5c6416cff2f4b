package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/config"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestMain initializes the metric vectors the handlers record into.
func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.SetDB(db)
	t.Cleanup(func() { database.SetDB(nil) })
	return mock
}

func newTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecomputeOrderTotal(t *testing.T) {
	mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "status", "order_date", "shipping_address_id",
			"total_amount", "created_at", "updated_at",
		}).AddRow(5, 1, "paid", now, nil, "0.00", now, now))

	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE order_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "product_id", "quantity", "unit_price", "created_at",
		}).
			AddRow(5, 10, 1, "850.00", now).
			AddRow(5, 11, 2, "25.50", now))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodPost, "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, RecomputeOrderTotal(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("901.00")),
		"expected total 901.00, got %s", order.TotalAmount)
	require.Len(t, order.Items, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecomputeOrderTotalNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE`).
		WillReturnError(gorm.ErrRecordNotFound)

	c, rec := newTestContext(t, http.MethodPost, "")
	c.SetParamNames("id")
	c.SetParamValues("404")

	require.NoError(t, RecomputeOrderTotal(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	newMockDB(t)

	c, rec := newTestContext(t, http.MethodPut, `{"status":"teleported"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, UpdateOrderStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	newMockDB(t)

	c, rec := newTestContext(t, http.MethodPost, `{"items":[]}`)
	c.Set("user_id", uint(1))

	require.NoError(t, CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	newMockDB(t)

	c, rec := newTestContext(t, http.MethodPost,
		`{"items":[{"product_id":1,"quantity":0}]}`)
	c.Set("user_id", uint(1))

	require.NoError(t, CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
