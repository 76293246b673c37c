// internal/domain/bundle/session.go
package bundle

import (
	"sort"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

// Phase is the fulfillment session's lifecycle state.
type Phase string

const (
	PhaseInactive  Phase = "inactive"
	PhaseSelecting Phase = "selecting"
	PhaseComplete  Phase = "complete"
)

// Session drives bundle fulfillment over a cart state: slot-based step
// sequencing, quantity accumulation or categorical stepping, depending
// on the promotion's mode. Capacity violations are silent no-ops; the
// session enforces the cap and replace rules instead of erroring.
type Session struct {
	state    *cart.State
	promo    *promotion.Promotion
	products []catalog.Product // eligible catalog snapshot
	step     int
}

// Start opens a fulfillment session for the promotion. Switching away
// from a previously active promotion discards that bundle's selection.
// The step pointer opens at the requested step, clamped to range.
func Start(state *cart.State, promo *promotion.Promotion, products []catalog.Product, step int) *Session {
	if state.ActivePromotion != nil && state.ActivePromotion.ID != promo.ID {
		state.RemoveBundle(state.ActivePromotion.ID)
	}
	state.ActivePromotion = promo

	s := &Session{
		state:    state,
		promo:    promo,
		products: products,
	}
	s.SetStep(step)
	return s
}

// Resume reattaches to the state's active promotion. Returns nil when
// no promotion is active.
func Resume(state *cart.State, products []catalog.Product) *Session {
	if state.ActivePromotion == nil {
		return nil
	}
	s := &Session{
		state:    state,
		promo:    state.ActivePromotion,
		products: products,
	}
	s.step = s.firstIncompleteStep()
	return s
}

// Promotion returns the promotion being fulfilled.
func (s *Session) Promotion() *promotion.Promotion {
	return s.promo
}

// Mode resolves the session's fulfillment mode. Legacy promotions
// without an explicit mode are inferred: steps
// present means slots; multiple eligible categories whose count equals
// the required count means categorical; anything else is quantity.
func (s *Session) Mode() promotion.Mode {
	if s.promo.Mode != "" {
		return s.promo.Mode
	}
	if len(s.promo.Steps) > 0 {
		return promotion.ModeSlots
	}
	if cats := s.Categories(); len(cats) > 1 && len(cats) == s.promo.RequiredItemCount {
		return promotion.ModeCategorical
	}
	return promotion.ModeQuantity
}

// Phase reports the session's lifecycle state.
func (s *Session) Phase() Phase {
	if s.promo == nil {
		return PhaseInactive
	}
	if s.IsComplete() {
		return PhaseComplete
	}
	return PhaseSelecting
}

// Categories returns the sorted distinct categories of the eligible
// product set.
func (s *Session) Categories() []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// StepCount returns how many navigable steps the session has. Quantity
// mode is a single shared pool.
func (s *Session) StepCount() int {
	switch s.Mode() {
	case promotion.ModeSlots:
		return s.promo.RequiredItemCount
	case promotion.ModeCategorical:
		return len(s.Categories())
	default:
		return 1
	}
}

// Step returns the current step pointer.
func (s *Session) Step() int {
	return s.step
}

// SetStep moves the step pointer, clamped to [0, StepCount-1].
func (s *Session) SetStep(step int) {
	max := s.StepCount() - 1
	if step > max {
		step = max
	}
	if step < 0 {
		step = 0
	}
	s.step = step
}

// Next advances the step pointer. It cannot advance past the last step
// and never touches other steps' selections.
func (s *Session) Next() bool {
	if s.step >= s.StepCount()-1 {
		return false
	}
	s.step++
	return true
}

// Prev retreats the step pointer. It cannot retreat before the first step.
func (s *Session) Prev() bool {
	if s.step <= 0 {
		return false
	}
	s.step--
	return true
}

// Eligible reports whether the product is selectable at the given step:
// it must match the step's filter (or the current category in
// categorical mode) and be marked available.
func (s *Session) Eligible(step int, p catalog.Product) bool {
	if !p.Available {
		return false
	}
	switch s.Mode() {
	case promotion.ModeSlots:
		if step < 0 || step >= len(s.promo.Steps) {
			return false
		}
		return matchesFilter(s.promo.Steps[step].Filter, p)
	case promotion.ModeCategorical:
		cats := s.Categories()
		if step < 0 || step >= len(cats) {
			return false
		}
		return s.taggedFor(p) && p.Category == cats[step]
	default:
		return s.taggedFor(p)
	}
}

// EligibleAnyStep reports whether the product is selectable at any step
// of the session.
func (s *Session) EligibleAnyStep(p catalog.Product) bool {
	for step := 0; step < s.StepCount(); step++ {
		if s.Eligible(step, p) {
			return true
		}
	}
	return false
}

func (s *Session) taggedFor(p catalog.Product) bool {
	return p.PromotionID != nil && *p.PromotionID == s.promo.ID
}

// EligibleProducts returns the eligible product set for a step.
func (s *Session) EligibleProducts(step int) []catalog.Product {
	var out []catalog.Product
	for _, p := range s.products {
		if s.Eligible(step, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilter(f promotion.StepFilter, p catalog.Product) bool {
	switch f.Kind {
	case promotion.FilterCategory:
		for _, v := range f.Values {
			if p.Category == v {
				return true
			}
		}
	case promotion.FilterProduct:
		for _, v := range f.Values {
			if p.ID == v {
				return true
			}
		}
	}
	return false
}

// SelectForStep inserts the selection at the given slot, replacing any
// previous selection there, and advances the step pointer to the next
// incomplete step. Slot-based promotions only; out-of-range steps and
// other modes are no-ops.
func (s *Session) SelectForStep(step int, product catalog.Product, size string, variant *catalog.Variant) {
	if s.Mode() != promotion.ModeSlots {
		return
	}
	if step < 0 || step >= s.promo.RequiredItemCount {
		return
	}

	s.state.PromoItems = removeStepLine(s.state.PromoItems, s.promo.ID, step)

	idx := step
	bid := s.promo.ID
	s.state.PromoItems = append(s.state.PromoItems, cart.Line{
		Product:   product,
		Variant:   variant,
		Size:      size,
		Quantity:  1,
		BundleID:  &bid,
		IsPromo:   true,
		StepIndex: &idx,
	})

	s.step = s.firstIncompleteStep()
}

// RemoveStepItem clears the selection at the given slot.
func (s *Session) RemoveStepItem(step int) {
	s.state.PromoItems = removeStepLine(s.state.PromoItems, s.promo.ID, step)
}

func removeStepLine(lines []cart.Line, bundleID string, step int) []cart.Line {
	kept := lines[:0]
	for _, line := range lines {
		if line.BundleID != nil && *line.BundleID == bundleID &&
			line.StepIndex != nil && *line.StepIndex == step {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// AddQuantityItem adds eligible quantity toward the bundle. Products
// not tagged with the promotion, or unavailable, are ignored. Adding at
// the cap is rejected as a no-op; otherwise the addition is capped to
// the remaining count, never partially overflowing. Categorical mode
// additionally enforces its per-category cap.
func (s *Session) AddQuantityItem(product catalog.Product, size string, variant *catalog.Variant, quantity int) {
	mode := s.Mode()
	if mode == promotion.ModeSlots {
		return
	}
	if !product.Available || !s.taggedFor(product) {
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	required := s.promo.RequiredItemCount
	current := s.state.PromoQuantity()
	if current >= required {
		return
	}

	if mode == promotion.ModeCategorical {
		maxPerCategory := required
		if cats := s.Categories(); required == len(cats) {
			maxPerCategory = 1
		}
		if s.categoryQuantity(product.Category) >= maxPerCategory {
			return
		}
	}

	add := quantity
	if remaining := required - current; add > remaining {
		add = remaining
	}

	variantName := ""
	if variant != nil {
		variantName = variant.Name
	}
	for i := range s.state.PromoItems {
		line := &s.state.PromoItems[i]
		if line.StepIndex != nil {
			continue
		}
		if line.Product.ID == product.ID && line.Size == size &&
			lineVariantName(line) == variantName &&
			line.BundleID != nil && *line.BundleID == s.promo.ID {
			line.Quantity += add
			return
		}
	}

	bid := s.promo.ID
	s.state.PromoItems = append(s.state.PromoItems, cart.Line{
		Product:  product,
		Variant:  variant,
		Size:     size,
		Quantity: add,
		BundleID: &bid,
		IsPromo:  true,
	})
}

func lineVariantName(l *cart.Line) string {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.Name
}

func (s *Session) categoryQuantity(category string) int {
	total := 0
	for _, line := range s.state.PromoItems {
		if line.BundleID != nil && *line.BundleID == s.promo.ID && line.Product.Category == category {
			total += line.Quantity
		}
	}
	return total
}

// RemoveQuantityItem decrements the most-recently-added matching line
// by one, removing it when its quantity reaches zero. Last-in is the
// preserved tie-break.
func (s *Session) RemoveQuantityItem(productID, size string) {
	for i := len(s.state.PromoItems) - 1; i >= 0; i-- {
		line := &s.state.PromoItems[i]
		if line.Product.ID != productID || line.Size != size {
			continue
		}
		if line.Quantity > 1 {
			line.Quantity--
		} else {
			s.state.PromoItems = append(s.state.PromoItems[:i], s.state.PromoItems[i+1:]...)
		}
		return
	}
}

// RemoveBundle purges every promo line of the given bundle.
func (s *Session) RemoveBundle(bundleID string) {
	s.state.RemoveBundle(bundleID)
}

// CurrentCount returns the bundle's filled count: occupied slots for
// slot-based promotions, summed quantity otherwise.
func (s *Session) CurrentCount() int {
	if s.Mode() == promotion.ModeSlots {
		count := 0
		for step := 0; step < s.promo.RequiredItemCount; step++ {
			if s.stepOccupied(step) {
				count++
			}
		}
		return count
	}
	return s.state.PromoQuantity()
}

// RemainingCount returns how many items are still needed.
func (s *Session) RemainingCount() int {
	remaining := s.promo.RequiredItemCount - s.CurrentCount()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsComplete reports exact completion: every slot filled for slot-based
// promotions, summed quantity exactly equal to the required count
// otherwise. Never true above or below the requirement.
func (s *Session) IsComplete() bool {
	if s.Mode() == promotion.ModeSlots {
		for step := 0; step < s.promo.RequiredItemCount; step++ {
			if !s.stepOccupied(step) {
				return false
			}
		}
		return true
	}
	return s.state.PromoQuantity() == s.promo.RequiredItemCount
}

func (s *Session) stepOccupied(step int) bool {
	for _, line := range s.state.PromoItems {
		if line.BundleID != nil && *line.BundleID == s.promo.ID &&
			line.StepIndex != nil && *line.StepIndex == step {
			return true
		}
	}
	return false
}

func (s *Session) firstIncompleteStep() int {
	if s.Mode() != promotion.ModeSlots {
		return 0
	}
	for step := 0; step < s.promo.RequiredItemCount; step++ {
		if !s.stepOccupied(step) {
			return step
		}
	}
	return 0
}

// Progress is a snapshot of the session for API responses.
type Progress struct {
	PromotionID   string         `json:"promotion_id"`
	Title         string         `json:"title"`
	Mode          promotion.Mode `json:"mode"`
	Phase         Phase          `json:"phase"`
	Step          int            `json:"step"`
	StepCount     int            `json:"step_count"`
	CurrentCount  int            `json:"current_count"`
	RequiredCount int            `json:"required_count"`
	Remaining     int            `json:"remaining"`
	IsComplete    bool           `json:"is_complete"`
	FixedPrice    int64          `json:"fixed_price"`
}

// Progress returns the session snapshot.
func (s *Session) ProgressSnapshot() Progress {
	return Progress{
		PromotionID:   s.promo.ID,
		Title:         s.promo.Title,
		Mode:          s.Mode(),
		Phase:         s.Phase(),
		Step:          s.step,
		StepCount:     s.StepCount(),
		CurrentCount:  s.CurrentCount(),
		RequiredCount: s.promo.RequiredItemCount,
		Remaining:     s.RemainingCount(),
		IsComplete:    s.IsComplete(),
		FixedPrice:    s.promo.FixedPrice,
	}
}
