// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/order"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
	"github.com/projektikatalog/jeftinoRS/internal/domain/settings"
	"github.com/projektikatalog/jeftinoRS/internal/domain/user"
	"github.com/projektikatalog/jeftinoRS/internal/pkg/auth"
)

// RunMigrations runs database migrations for all domain models
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&catalog.Product{},
		&promotion.Promotion{},
		&order.Order{},
		&settings.Setting{},
		&user.AdminUser{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CreateIndexes creates additional database indexes for performance
func CreateIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_available ON products(available)",
		"CREATE INDEX IF NOT EXISTS idx_products_promotion ON products(promotion_id)",
		"CREATE INDEX IF NOT EXISTS idx_promotions_active ON promotions(active)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// SeedInitialData seeds the database with a default admin account in
// development environments.
func SeedInitialData(db *gorm.DB, passwords *auth.PasswordManager) error {
	var count int64
	if err := db.Model(&user.AdminUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := passwords.HashPassword("admin123!")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &user.AdminUser{
		ID:           uuid.New().String(),
		Email:        "admin@jeftino.rs",
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}
