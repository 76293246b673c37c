// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/order"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

var (
	// ErrEmptyCart rejects submission of a cart with no lines at all.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBundleIncomplete rejects submission while a started bundle
	// still misses items.
	ErrBundleIncomplete = errors.New("bundle selection is incomplete")
)

// ValidationError carries per-field messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid customer info"
}

// OrderCreator persists a new order.
type OrderCreator interface {
	Create(o *order.Order) error
}

// Notifier announces a freshly created order. Implementations must not
// block the checkout path.
type Notifier interface {
	NotifyNewOrder(o *order.Order)
}

// CartStore loads, saves and clears per-session cart state.
type CartStore interface {
	Load(ctx context.Context, sessionID string) *cart.State
	Save(ctx context.Context, sessionID string, state *cart.State)
	Clear(ctx context.Context, sessionID string)
}

// Service reconciles the cart into an order: validation, totals,
// persistence, notification and cart cleanup.
type Service struct {
	carts    CartStore
	orders   OrderCreator
	notifier Notifier
	logger   *logrus.Logger
}

// NewService creates a new checkout service
func NewService(carts CartStore, orders OrderCreator, notifier Notifier, logger *logrus.Logger) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Validate checks customer info without touching the cart. Returns a
// ValidationError listing every failing field, or nil.
func (s *Service) Validate(info *CustomerInfo) error {
	if errs := ValidateCustomerInfo(info); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Submit turns the session's cart into an order. The cart survives any
// failure untouched; it is cleared only after the order is persisted.
func (s *Service) Submit(ctx context.Context, sessionID string, info *CustomerInfo) (*order.Order, error) {
	state := s.carts.Load(ctx, sessionID)

	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if state.ActivePromotion != nil && !bundleComplete(state) {
		return nil, ErrBundleIncomplete
	}
	if err := s.Validate(info); err != nil {
		return nil, err
	}

	o := BuildOrder(state, info)
	if err := s.orders.Create(o); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   o.ID,
		"order_code": o.OrderCode,
		"total":      o.GrandTotal(),
	}).Info("Order created")

	go s.notifier.NotifyNewOrder(o)

	s.carts.Clear(ctx, sessionID)
	return o, nil
}

// bundleComplete checks exact fulfillment of the active promotion:
// every slot filled for slot-based promotions, quantity exactly at the
// required count otherwise.
func bundleComplete(state *cart.State) bool {
	promo := state.ActivePromotion
	if promo.EffectiveMode() == promotion.ModeSlots {
		for step := 0; step < promo.RequiredItemCount; step++ {
			found := false
			for _, line := range state.PromoItems {
				if line.StepIndex != nil && *line.StepIndex == step {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return state.PromoQuantity() == promo.RequiredItemCount
}

// BuildOrder maps the cart state and customer info onto the order wire
// format. Regular lines come first in the item list, then promo lines.
func BuildOrder(state *cart.State, info *CustomerInfo) *order.Order {
	email := strings.TrimSpace(info.Email)
	if email == "" {
		email = "N/A"
	}

	o := &order.Order{
		CustomerName: info.FullName(),
		Email:        email,
		Address:      strings.TrimSpace(info.Address),
		City:         strings.TrimSpace(info.City),
		PostalCode:   strings.TrimSpace(info.PostalCode),
		Phone:        stripWhitespace(info.Phone),
		Items:        order.LineList(state.AllLines()),
		TotalPrice:   state.TotalPrice(),
		ShippingCost: state.ShippingCost(),
		Status:       order.StatusReceived,
	}

	if state.ActivePromotion != nil && len(state.PromoItems) > 0 {
		o.PromoTitle = state.ActivePromotion.Title
		o.PromoPrice = state.ActivePromotion.FixedPrice
		o.PromotionID = state.ActivePromotion.ID
	}

	return o
}
