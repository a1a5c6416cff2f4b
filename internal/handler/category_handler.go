package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id,omitempty"`
}

// ListCategories retrieves all categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing categories")

	var categories []model.Category
	result := database.GetDB().Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve categories"})
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a single category with its children and products
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting category by ID", zap.String("category_id", id))

	var category model.Category
	result := database.GetDB().Preload("Children").Preload("Products").First(&category, id)
	if result.Error != nil {
		log.Error("Category not found",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	result := database.GetDB().Create(&category)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Category with this name already exists", "Failed to create category")
	}

	prometheus.RecordEntityOperation("category", "create")
	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating category", zap.String("category_id", id))

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var category model.Category
	result := database.GetDB().First(&category, id)
	if result.Error != nil {
		log.Error("Category not found for update",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ParentID = req.ParentID

	result = database.GetDB().Save(&category)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Category with this name already exists", "Failed to update category")
	}

	prometheus.RecordEntityOperation("category", "update")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category. Child categories survive with
// their parent reference nulled; join rows to products cascade away.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting category", zap.String("category_id", id))

	result := database.GetDB().Delete(&model.Category{}, id)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Category is still referenced", "Failed to delete category")
	}
	if result.RowsAffected == 0 {
		log.Warn("Category not found for deletion", zap.String("category_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	prometheus.RecordEntityOperation("category", "delete")
	log.Info("Category deleted successfully", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
