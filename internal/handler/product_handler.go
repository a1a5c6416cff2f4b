package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stock_qty"`
	IsActive    bool            `json:"is_active"`
	CategoryIDs []uint          `json:"category_ids,omitempty"`
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing products with filters")

	db := database.GetDB()
	var products []model.Product

	// Handle query parameters for filtering
	query := db

	// Filter by active status if specified
	isActive := c.QueryParam("is_active")
	if isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
			log.Info("Filtering products by active status", zap.Bool("is_active", active))
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	// Filter by category if specified
	categoryID := c.QueryParam("category_id")
	if categoryID != "" {
		query = query.
			Joins("JOIN product_categories ON product_categories.product_id = products.id").
			Where("product_categories.category_id = ?", categoryID)
		log.Info("Filtering products by category", zap.String("category_id", categoryID))
	}

	// Execute the query
	result := query.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting product by ID", zap.String("product_id", id))

	var product model.Product
	result := database.GetDB().Preload("Categories").Preload("Reviews").First(&product, id)
	if result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name),
		zap.String("product_sku", product.SKU))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.String("sku", req.SKU),
		zap.String("price", req.Price.String()))

	product := model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		StockQty:    req.StockQty,
		IsActive:    req.IsActive,
	}

	db := database.GetDB()
	if len(req.CategoryIDs) > 0 {
		var categories []model.Category
		if err := db.Find(&categories, req.CategoryIDs).Error; err != nil {
			log.Error("Failed to resolve categories", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ids"})
		}
		if len(categories) != len(req.CategoryIDs) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ids"})
		}
		product.Categories = categories
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := db.Create(&product)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Product with this SKU already exists", "Failed to create product")
	}

	prometheus.RecordEntityOperation("product", "create")
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10), product.SKU, float64(product.StockQty))
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	// Find existing product
	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found for update",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	oldSKU := product.SKU
	oldPrice := product.Price

	// Update fields
	product.SKU = req.SKU
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.StockQty = req.StockQty
	product.IsActive = req.IsActive

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Product with this SKU already exists", "Failed to update product")
	}

	prometheus.RecordEntityOperation("product", "update")
	prometheus.UpdateProductInventory(id, product.SKU, float64(product.StockQty))
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("old_sku", oldSKU),
		zap.String("new_sku", product.SKU),
		zap.String("old_price", oldPrice.String()),
		zap.String("new_price", product.Price.String()))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product. Reviews and category join rows
// cascade away; the delete is refused while order items reference it.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"Product is referenced by existing orders and cannot be deleted", "Failed to delete product")
	}
	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	prometheus.RecordEntityOperation("product", "delete")
	log.Info("Product deleted successfully",
		zap.String("product_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// AttachProductCategory links a product to a category
func AttachProductCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	categoryID := c.Param("categoryID")

	var product model.Product
	if err := database.GetDB().First(&product, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}
	var category model.Category
	if err := database.GetDB().First(&category, categoryID).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	if err := database.GetDB().Model(&product).Association("Categories").Append(&category); err != nil {
		log.Error("Failed to attach category",
			zap.String("product_id", id),
			zap.String("category_id", categoryID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to attach category"})
	}

	log.Info("Category attached to product",
		zap.String("product_id", id),
		zap.String("category_id", categoryID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category attached"})
}

// DetachProductCategory unlinks a product from a category
func DetachProductCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	categoryID := c.Param("categoryID")

	var product model.Product
	if err := database.GetDB().First(&product, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}
	var category model.Category
	if err := database.GetDB().First(&category, categoryID).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	if err := database.GetDB().Model(&product).Association("Categories").Delete(&category); err != nil {
		log.Error("Failed to detach category",
			zap.String("product_id", id),
			zap.String("category_id", categoryID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to detach category"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Category detached"})
}
