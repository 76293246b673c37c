// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest filters and paginates the admin order listing.
type ListRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Search   string `form:"search"`
}

// ListResponse is the paginated order listing.
type ListResponse struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// Create persists a new order, minting its ID and order code.
func (s *Service) Create(o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = StatusReceived
	}
	o.OrderCode = generateOrderCode(o.ID)

	if err := s.db.Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// generateOrderCode builds a human-readable code from the order date
// and a fragment of the order's UUID.
func generateOrderCode(id string) string {
	frag := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(frag) > 6 {
		frag = frag[:6]
	}
	return fmt.Sprintf("JR-%s-%s", time.Now().Format("20060102"), frag)
}

// Get retrieves an order by ID.
func (s *Service) Get(id string) (*Order, error) {
	var o Order
	if err := s.db.Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// List returns orders newest-first, filtered and paginated.
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
			query = query.Where("created_at >= ?", from)
		}
	}
	if req.DateTo != "" {
		if to, err := time.Parse("2006-01-02", req.DateTo); err == nil {
			query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where(
			"order_code ILIKE ? OR customer_name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders:     orders,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus sets an order's status.
func (s *Service) UpdateStatus(id, status string) (*Order, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	o, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(o).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	o.Status = status
	return o, nil
}

// Delete soft-deletes an order.
func (s *Service) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Order{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}
	return nil
}
