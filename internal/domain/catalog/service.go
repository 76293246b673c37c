// internal/domain/catalog/service.go
package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/projektikatalog/jeftinoRS/internal/config"
	"gorm.io/gorm"
)

// Service handles product catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Category          string `form:"category"`
	AvailableOnly     bool   `form:"available_only"`
	IncludeBundleOnly bool   `form:"include_bundle_only"`
}

// ListProducts retrieves catalog products. Bundle-only products are
// excluded from the general grid unless explicitly requested.
func (s *Service) ListProducts(req *ListRequest) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{}).Order("created_at DESC")
	if !req.IncludeBundleOnly {
		query = query.Where("bundle_only = ?", false)
	}
	if req.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// ListEligible retrieves available products eligible for a promotion in
// quantity mode (products tagged with the promotion's id).
func (s *Service) ListEligible(promotionID string) ([]Product, error) {
	var products []Product
	err := s.db.
		Where("promotion_id = ? AND available = ?", promotionID, true).
		Order("category, name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve eligible products: %w", err)
	}
	return products, nil
}

// ListAvailable retrieves every available product, bundle-only included.
// Slot-based promotions filter per step from this set.
func (s *Service) ListAvailable() ([]Product, error) {
	var products []Product
	if err := s.db.Where("available = ?", true).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id string) (*Product, error) {
	var product Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a new product (admin)
func (s *Service) CreateProduct(product *Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct applies partial updates to a product (admin)
func (s *Service) UpdateProduct(id string, updates map[string]interface{}) (*Product, error) {
	var product Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product (admin)
func (s *Service) DeleteProduct(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
