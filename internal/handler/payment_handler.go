package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentRequest defines the structure for payment creation requests
type PaymentRequest struct {
	Method model.PaymentMethod `json:"method" validate:"required"`
	Amount decimal.Decimal     `json:"amount"`
}

// PaymentStatusRequest defines the structure for payment status updates
type PaymentStatusRequest struct {
	Status model.PaymentStatus `json:"status" validate:"required"`
}

// CreateOrderPayment records the payment for an order. An order has at most
// one payment; a second insert hits the uniqueness constraint.
func CreateOrderPayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Creating payment for order", zap.String("order_id", id))

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Method.Valid() {
		log.Warn("Invalid payment method", zap.String("method", string(req.Method)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
	}

	var order model.Order
	if err := database.GetDB().First(&order, id).Error; err != nil {
		log.Error("Order not found",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	// Default to the order total when no amount is given.
	amount := req.Amount
	if amount.IsZero() {
		amount = order.TotalAmount
	}

	payment := model.Payment{
		OrderID: order.ID,
		Method:  req.Method,
		Amount:  amount,
		Status:  model.PaymentStatusPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&payment)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Order already has a payment", "Failed to create payment")
	}

	prometheus.RecordEntityOperation("payment", "create")
	log.Info("Payment created successfully",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", order.ID),
		zap.String("amount", payment.Amount.String()))
	return c.JSON(http.StatusCreated, payment)
}

// GetOrderPayment retrieves the payment of an order
func GetOrderPayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var payment model.Payment
	result := database.GetDB().First(&payment, "order_id = ?", id)
	if result.Error != nil {
		log.Warn("Payment not found", zap.String("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	return c.JSON(http.StatusOK, payment)
}

// UpdatePaymentStatus moves a payment to a new processing state
func UpdatePaymentStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Status.Valid() {
		log.Warn("Invalid payment status", zap.String("status", string(req.Status)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment status"})
	}

	result := database.GetDB().Model(&model.Payment{}).Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		log.Error("Failed to update payment status",
			zap.String("payment_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update payment status"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	prometheus.RecordEntityOperation("payment", "update_status")
	log.Info("Payment status updated",
		zap.String("payment_id", id),
		zap.String("status", string(req.Status)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment status updated"})
}
