// internal/domain/cart/state.go
package cart

import (
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
	"github.com/projektikatalog/jeftinoRS/internal/pkg/pricing"
)

// Line is a single cart entry. The product is snapshotted at add time
// and treated as immutable afterwards.
type Line struct {
	Product   catalog.Product  `json:"product"`
	Variant   *catalog.Variant `json:"variant,omitempty"`
	Size      string           `json:"size,omitempty"` // Legacy selector
	Quantity  int              `json:"quantity"`
	BundleID  *string          `json:"bundle_id,omitempty"`
	IsPromo   bool             `json:"is_promo"`
	StepIndex *int             `json:"step_index,omitempty"` // Slot position for slot-based bundles
}

// UnitPrice returns the effective per-unit price of the line.
func (l *Line) UnitPrice() int64 {
	return pricing.UnitPrice(&l.Product, l.Variant)
}

// variantName returns the identity component contributed by the variant.
func (l *Line) variantName() string {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.Name
}

func (l *Line) bundleID() string {
	if l.BundleID == nil {
		return ""
	}
	return *l.BundleID
}

// matchesIdentity reports whether the line would merge with an incoming
// line carrying the given identity components.
func (l *Line) matchesIdentity(productID, size, variantName, bundleID string) bool {
	return l.Product.ID == productID &&
		l.Size == size &&
		l.variantName() == variantName &&
		l.bundleID() == bundleID
}

// State is the session's mutable cart: regular lines, promotion lines
// and the active promotion. It is owned by exactly one session and
// mutated only through its methods; the enclosing Service serializes
// access and persists the state after every mutation.
type State struct {
	Items           []Line               `json:"items"`
	PromoItems      []Line               `json:"promo_items"`
	ActivePromotion *promotion.Promotion `json:"active_promotion,omitempty"`
}

// NewState returns an empty cart state.
func NewState() *State {
	return &State{
		Items:      []Line{},
		PromoItems: []Line{},
	}
}

// AddLine merges the addition into an existing line with the same
// identity (product, size, variant, bundle) or appends a new line.
func (s *State) AddLine(product catalog.Product, size string, quantity int, variant *catalog.Variant, bundleID *string) {
	if quantity < 1 {
		quantity = 1
	}

	variantName := ""
	if variant != nil {
		variantName = variant.Name
	}
	bid := ""
	if bundleID != nil {
		bid = *bundleID
	}

	for i := range s.Items {
		if s.Items[i].matchesIdentity(product.ID, size, variantName, bid) {
			s.Items[i].Quantity += quantity
			if variant != nil && s.Items[i].Variant == nil {
				s.Items[i].Variant = variant
			}
			return
		}
	}

	s.Items = append(s.Items, Line{
		Product:  product,
		Variant:  variant,
		Size:     size,
		Quantity: quantity,
		BundleID: bundleID,
		IsPromo:  bundleID != nil,
	})
}

// UpdateQuantity sets a regular line's quantity directly. A quantity of
// zero or less removes the line. There is no upper clamp.
func (s *State) UpdateQuantity(productID, size string, quantity int) {
	if quantity <= 0 {
		s.RemoveLine(productID, size)
		return
	}
	for i := range s.Items {
		if s.Items[i].Product.ID == productID && s.Items[i].Size == size {
			s.Items[i].Quantity = quantity
		}
	}
}

// RemoveLine removes the matching regular line. Removing an absent line
// is a no-op, not an error.
func (s *State) RemoveLine(productID, size string) {
	kept := s.Items[:0]
	for _, line := range s.Items {
		if line.Product.ID == productID && line.Size == size {
			continue
		}
		kept = append(kept, line)
	}
	s.Items = kept
}

// Clear empties regular and promo lines and drops the active promotion.
// Used after successful checkout or by explicit user action.
func (s *State) Clear() {
	s.Items = []Line{}
	s.PromoItems = []Line{}
	s.ActivePromotion = nil
}

// ClearPromoItems drops promo lines only.
func (s *State) ClearPromoItems() {
	s.PromoItems = []Line{}
}

// RemoveBundle purges every promo line belonging to the given bundle.
func (s *State) RemoveBundle(bundleID string) {
	kept := s.PromoItems[:0]
	for _, line := range s.PromoItems {
		if line.bundleID() == bundleID {
			continue
		}
		kept = append(kept, line)
	}
	s.PromoItems = kept
}

// PromoQuantity returns the summed quantity of all promo lines.
func (s *State) PromoQuantity() int {
	total := 0
	for _, line := range s.PromoItems {
		total += line.Quantity
	}
	return total
}

// TotalItemCount sums quantities across regular and promo lines.
func (s *State) TotalItemCount() int {
	total := 0
	for _, line := range s.Items {
		total += line.Quantity
	}
	return total + s.PromoQuantity()
}

// TotalPrice sums regular lines at their unit price and adds the active
// promotion's fixed price exactly once when any promo lines exist. The
// bundle is priced as a unit, never as the sum of its parts.
func (s *State) TotalPrice() int64 {
	var total int64
	for _, line := range s.Items {
		if line.IsPromo || line.BundleID != nil {
			continue
		}
		total += line.UnitPrice() * int64(line.Quantity)
	}
	if len(s.PromoItems) > 0 && s.ActivePromotion != nil {
		total += s.ActivePromotion.FixedPrice
	}
	return total
}

// ShippingCost returns the tiered shipping rate for the current total.
func (s *State) ShippingCost() int64 {
	return pricing.ShippingCost(s.TotalPrice())
}

// AllLines returns regular lines followed by promo lines, the order
// used for the order payload's item list.
func (s *State) AllLines() []Line {
	lines := make([]Line, 0, len(s.Items)+len(s.PromoItems))
	lines = append(lines, s.Items...)
	lines = append(lines, s.PromoItems...)
	return lines
}

// IsEmpty reports whether the cart holds no lines at all.
func (s *State) IsEmpty() bool {
	return len(s.Items) == 0 && len(s.PromoItems) == 0
}
