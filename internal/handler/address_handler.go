package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/middleware"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
)

// AddressRequest defines the structure for address creation/update requests
type AddressRequest struct {
	Line1     string `json:"line1" validate:"required"`
	City      string `json:"city" validate:"required"`
	Country   string `json:"country" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// ListMyAddresses retrieves the authenticated user's addresses
func ListMyAddresses(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var addresses []model.Address
	result := database.GetDB().Where("user_id = ?", userID).Find(&addresses)
	if result.Error != nil {
		log.Error("Failed to list addresses", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve addresses"})
	}

	return c.JSON(http.StatusOK, addresses)
}

// CreateAddress adds an address for the authenticated user
func CreateAddress(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	address := model.Address{
		UserID:    userID,
		Line1:     req.Line1,
		City:      req.City,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	}

	db := database.GetDB()

	// Only one default address per user.
	if req.IsDefault {
		if err := db.Model(&model.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			log.Error("Failed to clear previous default address", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create address"})
		}
	}

	result := db.Create(&address)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Address references a missing user", "Failed to create address")
	}

	prometheus.RecordEntityOperation("address", "create")
	log.Info("Address created",
		zap.Uint("address_id", address.ID),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, address)
}

// UpdateAddress updates one of the authenticated user's addresses
func UpdateAddress(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var address model.Address
	result := database.GetDB().Where("user_id = ?", userID).First(&address, id)
	if result.Error != nil {
		log.Warn("Address not found",
			zap.String("address_id", id),
			zap.Uint("user_id", userID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Address not found"})
	}

	address.Line1 = req.Line1
	address.City = req.City
	address.Country = req.Country
	address.IsDefault = req.IsDefault

	if err := database.GetDB().Save(&address).Error; err != nil {
		log.Error("Failed to update address",
			zap.String("address_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update address"})
	}

	prometheus.RecordEntityOperation("address", "update")
	return c.JSON(http.StatusOK, address)
}

// DeleteAddress removes one of the authenticated user's addresses. Orders
// shipped to it keep their rows; the engine nulls their address reference.
func DeleteAddress(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	result := database.GetDB().Where("user_id = ?", userID).Delete(&model.Address{}, id)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Address is still referenced", "Failed to delete address")
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Address not found"})
	}

	prometheus.RecordEntityOperation("address", "delete")
	log.Info("Address deleted", zap.String("address_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Address deleted successfully"})
}
