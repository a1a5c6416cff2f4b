package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/middleware"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// ProfileRequest defines the structure for profile upsert requests
type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// GetMyProfile retrieves the authenticated user's profile
func GetMyProfile(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Warn("Missing user_id in context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var profile model.Profile
	result := database.GetDB().First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		log.Warn("Profile not found", zap.Uint("user_id", userID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Profile not found"})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpsertMyProfile creates or updates the authenticated user's profile
func UpsertMyProfile(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Warn("Missing user_id in context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	profile := model.Profile{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	// One profile per user; a second upsert overwrites the first.
	result := database.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "phone", "updated_at"}),
	}).Create(&profile)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Profile conflicts with an existing row", "Failed to save profile")
	}

	log.Info("Profile saved", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, profile)
}
