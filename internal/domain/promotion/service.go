// internal/domain/promotion/service.go
package promotion

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/projektikatalog/jeftinoRS/internal/config"
	"gorm.io/gorm"
)

// Service handles promotion business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new promotion service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListPromotions retrieves promotions, optionally only active ones.
func (s *Service) ListPromotions(activeOnly bool) ([]Promotion, error) {
	var promotions []Promotion

	query := s.db.Model(&Promotion{}).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve promotions: %w", err)
	}
	return promotions, nil
}

// GetPromotion retrieves a single promotion by ID
func (s *Service) GetPromotion(id string) (*Promotion, error) {
	var promo Promotion
	if err := s.db.Where("id = ?", id).First(&promo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("promotion not found")
		}
		return nil, fmt.Errorf("failed to retrieve promotion: %w", err)
	}
	return &promo, nil
}

// GetActivePromotion retrieves an active promotion by ID; inactive
// promotions cannot start a fulfillment session.
func (s *Service) GetActivePromotion(id string) (*Promotion, error) {
	var promo Promotion
	err := s.db.Where("id = ? AND active = ?", id, true).First(&promo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("promotion not found or inactive")
		}
		return nil, fmt.Errorf("failed to retrieve promotion: %w", err)
	}
	return &promo, nil
}

// CreatePromotion creates a new promotion (admin)
func (s *Service) CreatePromotion(promo *Promotion) error {
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	if promo.RequiredItemCount < 1 {
		return fmt.Errorf("required item count must be at least 1")
	}
	if promo.Mode == ModeSlots && len(promo.Steps) != promo.RequiredItemCount {
		return fmt.Errorf("slot-based promotion needs exactly %d steps", promo.RequiredItemCount)
	}
	if err := s.db.Create(promo).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

// UpdatePromotion applies partial updates to a promotion (admin)
func (s *Service) UpdatePromotion(id string, updates map[string]interface{}) (*Promotion, error) {
	var promo Promotion
	if err := s.db.Where("id = ?", id).First(&promo).Error; err != nil {
		return nil, fmt.Errorf("promotion not found")
	}

	if err := s.db.Model(&promo).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}
	return &promo, nil
}

// DeletePromotion soft-deletes a promotion (admin)
func (s *Service) DeletePromotion(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Promotion{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("promotion not found")
	}
	return nil
}
