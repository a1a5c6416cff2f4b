package database

import (
	"fmt"
	"time"

	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads the demo dataset: a category tree, a handful of products, one
// customer with profile and address, and a paid order with two items.
// Inserts run parents before children and always read generated identifiers
// back from the insert rather than assuming fresh-database values.
// Seeding is skipped when any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		electronics := model.Category{Name: "Electronics", Description: "Phones, laptops and accessories"}
		if err := tx.Create(&electronics).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		laptops := model.Category{Name: "Laptops", Description: "Portable computers", ParentID: &electronics.ID}
		accessories := model.Category{Name: "Accessories", Description: "Cables, mice and keyboards", ParentID: &electronics.ID}
		if err := tx.Create(&laptops).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		if err := tx.Create(&accessories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		laptop := model.Product{
			SKU:         "LAP-1001",
			Name:        "Aurora 14 Laptop",
			Description: "14-inch ultrabook, 16 GB RAM, 512 GB SSD",
			Price:       decimal.RequireFromString("850.00"),
			StockQty:    25,
			IsActive:    true,
			Categories:  []model.Category{electronics, laptops},
		}
		mouse := model.Product{
			SKU:         "ACC-2001",
			Name:        "Wireless Mouse",
			Description: "2.4 GHz wireless mouse",
			Price:       decimal.RequireFromString("25.50"),
			StockQty:    200,
			IsActive:    true,
			Categories:  []model.Category{electronics, accessories},
		}
		if err := tx.Create(&laptop).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		if err := tx.Create(&mouse).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		user := model.User{
			Email:        "demo@example.com",
			PasswordHash: string(hash),
			IsActive:     true,
			Profile:      &model.Profile{FirstName: "Demo", LastName: "Customer", Phone: "+1-555-0100"},
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}

		address := model.Address{
			UserID:    user.ID,
			Line1:     "1 Market Street",
			City:      "Springfield",
			Country:   "US",
			IsDefault: true,
		}
		if err := tx.Create(&address).Error; err != nil {
			return fmt.Errorf("failed to seed demo address: %w", err)
		}

		order := model.Order{
			UserID:            user.ID,
			Status:            model.OrderStatusPaid,
			OrderDate:         time.Now(),
			ShippingAddressID: &address.ID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to seed demo order: %w", err)
		}

		items := []model.OrderItem{
			{OrderID: order.ID, ProductID: laptop.ID, Quantity: 1, UnitPrice: laptop.Price},
			{OrderID: order.ID, ProductID: mouse.ID, Quantity: 2, UnitPrice: mouse.Price},
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to seed demo order items: %w", err)
		}

		// The schema does not maintain the total; store it explicitly.
		total := model.ComputeTotal(items)
		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("failed to store demo order total: %w", err)
		}

		payment := model.Payment{
			OrderID: order.ID,
			Method:  model.PaymentMethodCreditCard,
			Amount:  total,
			Status:  model.PaymentStatusCompleted,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to seed demo payment: %w", err)
		}

		review := model.Review{
			ProductID: laptop.ID,
			UserID:    &user.ID,
			Rating:    5,
			Comment:   "Great laptop for the price.",
		}
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to seed demo review: %w", err)
		}

		return nil
	})
}
