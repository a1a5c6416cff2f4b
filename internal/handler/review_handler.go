package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/middleware"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
)

// ReviewRequest defines the structure for review creation requests
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateProductReview adds a review for a product by the authenticated user
func CreateProductReview(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var product model.Product
	if err := database.GetDB().First(&product, id).Error; err != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	review := model.Review{
		ProductID: product.ID,
		UserID:    &userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	result := database.GetDB().Create(&review)
	if result.Error != nil {
		if errors.Is(result.Error, model.ErrRatingOutOfRange) {
			log.Warn("Rating out of range", zap.Int("rating", req.Rating))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": result.Error.Error()})
		}
		return constraintResponse(c, log, result.Error,
			"Review conflicts with schema constraints", "Failed to create review")
	}

	prometheus.RecordEntityOperation("review", "create")
	log.Info("Review created successfully",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", product.ID),
		zap.Int("rating", review.Rating))
	return c.JSON(http.StatusCreated, review)
}

// ListProductReviews retrieves the reviews of a product
func ListProductReviews(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var reviews []model.Review
	result := database.GetDB().Where("product_id = ?", id).Find(&reviews)
	if result.Error != nil {
		log.Error("Failed to list reviews",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve reviews"})
	}

	log.Info("Reviews retrieved successfully",
		zap.Int("count", len(reviews)),
		zap.String("product_id", id))
	return c.JSON(http.StatusOK, reviews)
}

// DeleteReview removes a review
func DeleteReview(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting review", zap.String("review_id", id))

	result := database.GetDB().Delete(&model.Review{}, id)
	if result.Error != nil {
		log.Error("Failed to delete review",
			zap.String("review_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete review"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}

	prometheus.RecordEntityOperation("review", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}
