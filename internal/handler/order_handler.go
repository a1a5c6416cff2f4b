package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/middleware"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderItemRequest is one product line of an order creation request
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	ShippingAddressID *uint              `json:"shipping_address_id,omitempty"`
	Items             []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// OrderStatusRequest defines the structure for status update requests
type OrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required"`
}

// CreateOrder handles creating an order with its items. Unit prices are
// captured from the product rows at order time, and the total is computed
// and stored in the same transaction.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order must contain at least one item"})
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
	}

	var order model.Order
	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		order = model.Order{
			UserID:            userID,
			Status:            model.OrderStatusPending,
			OrderDate:         time.Now(),
			ShippingAddressID: req.ShippingAddressID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			var product model.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}
			items = append(items, model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.TotalAmount = model.ComputeTotal(items)
		order.Items = items
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("total_amount", order.TotalAmount).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Order references a missing product", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product in order items"})
		}
		return constraintResponse(c, log, err,
			"Order conflicts with schema constraints", "Failed to create order")
	}

	prometheus.RecordEntityOperation("order", "create")
	log.Info("Order created successfully",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.String("total_amount", order.TotalAmount.String()))
	return c.JSON(http.StatusCreated, order)
}

// GetOrder retrieves an order with its items and payment
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting order by ID", zap.String("order_id", id))

	var order model.Order
	result := database.GetDB().
		Preload("Items").
		Preload("Payment").
		Preload("ShippingAddress").
		First(&order, id)
	if result.Error != nil {
		log.Error("Order not found",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// ListMyOrders retrieves the authenticated user's orders
func ListMyOrders(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var orders []model.Order
	result := database.GetDB().Preload("Items").Where("user_id = ?", userID).Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	log.Info("Orders retrieved successfully",
		zap.Int("count", len(orders)),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order to a new lifecycle state
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Status.Valid() {
		log.Warn("Invalid order status", zap.String("status", string(req.Status)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order status"})
	}

	result := database.GetDB().Model(&model.Order{}).Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		log.Error("Failed to update order status",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order status"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	prometheus.RecordEntityOperation("order", "update_status")
	log.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", string(req.Status)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Order status updated"})
}

// RecomputeOrderTotal recalculates the order total from its items and stores
// it. The schema never maintains the total on its own.
func RecomputeOrderTotal(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Recomputing order total", zap.String("order_id", id))

	var order model.Order
	if err := database.GetDB().First(&order, id).Error; err != nil {
		log.Error("Order not found",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	var items []model.OrderItem
	if err := database.GetDB().Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		log.Error("Failed to load order items",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to recompute order total"})
	}

	total := model.ComputeTotal(items)
	result := database.GetDB().Model(&model.Order{}).Where("id = ?", order.ID).
		Update("total_amount", total)
	if result.Error != nil {
		log.Error("Failed to store order total",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to recompute order total"})
	}

	order.TotalAmount = total
	order.Items = items
	log.Info("Order total recomputed",
		zap.String("order_id", id),
		zap.String("total_amount", total.String()))
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order; its items and payment cascade away
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting order", zap.String("order_id", id))

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.Order{}, id)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Order is still referenced", "Failed to delete order")
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	prometheus.RecordEntityOperation("order", "delete")
	log.Info("Order deleted successfully", zap.String("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
