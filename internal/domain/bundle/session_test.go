package bundle

import (
	"testing"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

func eligibleProduct(id, category, promoID string, price int64) catalog.Product {
	p := catalog.Product{
		ID:        id,
		Name:      "Artikal " + id,
		Category:  category,
		BasePrice: price,
		Available: true,
	}
	if promoID != "" {
		p.PromotionID = &promoID
	}
	return p
}

func quantityPromo(required int) *promotion.Promotion {
	return &promotion.Promotion{
		ID:                "promo-q",
		Title:             "Izaberi bilo koja 3",
		RequiredItemCount: required,
		FixedPrice:        3000,
		Active:            true,
		Mode:              promotion.ModeQuantity,
	}
}

func slotsPromo(steps ...promotion.BundleStep) *promotion.Promotion {
	return &promotion.Promotion{
		ID:                "promo-s",
		Title:             "Sastavi komplet",
		RequiredItemCount: len(steps),
		FixedPrice:        5000,
		Active:            true,
		Mode:              promotion.ModeSlots,
		Steps:             steps,
	}
}

func categoryStep(title string, categories ...string) promotion.BundleStep {
	return promotion.BundleStep{
		Title: title,
		Filter: promotion.StepFilter{
			Kind:   promotion.FilterCategory,
			Values: categories,
		},
	}
}

func TestQuantityAddCapsAtRequired(t *testing.T) {
	state := cart.NewState()
	promo := quantityPromo(3)
	products := []catalog.Product{eligibleProduct("p1", "majice", promo.ID, 1200)}

	s := Start(state, promo, products, 0)
	s.AddQuantityItem(products[0], "L", nil, 5)

	if got := state.PromoQuantity(); got != 3 {
		t.Errorf("expected capped quantity 3, got %d", got)
	}
	if !s.IsComplete() {
		t.Error("expected complete bundle after capped add")
	}
}

func TestQuantityAddAtCapIsRejected(t *testing.T) {
	state := cart.NewState()
	promo := quantityPromo(2)
	products := []catalog.Product{
		eligibleProduct("p1", "majice", promo.ID, 1200),
		eligibleProduct("p2", "majice", promo.ID, 1400),
	}

	s := Start(state, promo, products, 0)
	s.AddQuantityItem(products[0], "", nil, 2)
	s.AddQuantityItem(products[1], "", nil, 1)

	if got := state.PromoQuantity(); got != 2 {
		t.Errorf("expected quantity to stay at 2, got %d", got)
	}
	if len(state.PromoItems) != 1 {
		t.Errorf("expected rejected add to leave one line, got %d", len(state.PromoItems))
	}
}

func TestQuantityAddMergesSameSelection(t *testing.T) {
	state := cart.NewState()
	promo := quantityPromo(4)
	p := eligibleProduct("p1", "majice", promo.ID, 1200)

	s := Start(state, promo, []catalog.Product{p}, 0)
	s.AddQuantityItem(p, "L", nil, 1)
	s.AddQuantityItem(p, "L", nil, 2)

	if len(state.PromoItems) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(state.PromoItems))
	}
	if state.PromoItems[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", state.PromoItems[0].Quantity)
	}
}

func TestQuantityRemoveDecrementsLastAdded(t *testing.T) {
	state := cart.NewState()
	promo := quantityPromo(5)
	a := eligibleProduct("p1", "majice", promo.ID, 1200)
	b := eligibleProduct("p2", "majice", promo.ID, 1400)

	s := Start(state, promo, []catalog.Product{a, b}, 0)
	s.AddQuantityItem(a, "", nil, 2)
	s.AddQuantityItem(b, "", nil, 2)

	s.RemoveQuantityItem("p2", "")
	if got := state.PromoQuantity(); got != 3 {
		t.Errorf("expected quantity 3 after decrement, got %d", got)
	}

	s.RemoveQuantityItem("p2", "")
	if len(state.PromoItems) != 1 {
		t.Errorf("expected line removed at zero, got %d lines", len(state.PromoItems))
	}
}

func TestSlotSelectReplacesStep(t *testing.T) {
	state := cart.NewState()
	promo := slotsPromo(
		categoryStep("Gornji deo", "majice"),
		categoryStep("Donji deo", "pantalone"),
	)
	shirt := eligibleProduct("p1", "majice", "", 1200)
	shirt2 := eligibleProduct("p2", "majice", "", 1500)
	pants := eligibleProduct("p3", "pantalone", "", 2500)

	s := Start(state, promo, []catalog.Product{shirt, shirt2, pants}, 0)

	s.SelectForStep(0, shirt, "L", nil)
	s.SelectForStep(0, shirt2, "M", nil)

	count := 0
	for _, line := range state.PromoItems {
		if line.StepIndex != nil && *line.StepIndex == 0 {
			count++
			if line.Product.ID != "p2" {
				t.Errorf("expected replacement product p2 at step 0, got %s", line.Product.ID)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one line at step 0, got %d", count)
	}

	if s.IsComplete() {
		t.Error("bundle must not be complete with an empty slot")
	}

	s.SelectForStep(1, pants, "32", nil)
	if !s.IsComplete() {
		t.Error("expected complete bundle after filling all slots")
	}
}

func TestSlotSelectAdvancesToFirstIncompleteStep(t *testing.T) {
	state := cart.NewState()
	promo := slotsPromo(
		categoryStep("Prvi", "majice"),
		categoryStep("Drugi", "pantalone"),
		categoryStep("Treci", "obuca"),
	)
	shirt := eligibleProduct("p1", "majice", "", 1200)
	shoes := eligibleProduct("p3", "obuca", "", 4000)

	s := Start(state, promo, []catalog.Product{shirt, shoes}, 0)

	s.SelectForStep(2, shoes, "42", nil)
	if got := s.Step(); got != 0 {
		t.Errorf("expected pointer at first incomplete step 0, got %d", got)
	}

	s.SelectForStep(0, shirt, "L", nil)
	if got := s.Step(); got != 1 {
		t.Errorf("expected pointer at remaining step 1, got %d", got)
	}

	// Steps 0 and 2 filled, step 1 empty.
	if s.IsComplete() {
		t.Error("gap at step 1 must keep the bundle incomplete")
	}
	if got := s.RemainingCount(); got != 1 {
		t.Errorf("RemainingCount = %d, want 1", got)
	}
}

func TestSlotEligibility(t *testing.T) {
	promo := slotsPromo(
		categoryStep("Gornji deo", "majice"),
		promotion.BundleStep{
			Title: "Tacno ovaj",
			Filter: promotion.StepFilter{
				Kind:   promotion.FilterProduct,
				Values: []string{"p9"},
			},
		},
	)
	shirt := eligibleProduct("p1", "majice", "", 1200)
	exact := eligibleProduct("p9", "obuca", "", 4000)
	unavailable := eligibleProduct("p2", "majice", "", 900)
	unavailable.Available = false

	state := cart.NewState()
	s := Start(state, promo, []catalog.Product{shirt, exact, unavailable}, 0)

	if !s.Eligible(0, shirt) {
		t.Error("shirt should be eligible for category step")
	}
	if s.Eligible(0, exact) {
		t.Error("shoes must not match the category step")
	}
	if s.Eligible(0, unavailable) {
		t.Error("unavailable product must never be eligible")
	}
	if !s.Eligible(1, exact) {
		t.Error("exact product filter should match p9")
	}
	if s.Eligible(5, shirt) {
		t.Error("out of range step must not be eligible")
	}
}

func TestNavigationBounds(t *testing.T) {
	state := cart.NewState()
	promo := slotsPromo(
		categoryStep("Prvi", "majice"),
		categoryStep("Drugi", "pantalone"),
	)
	s := Start(state, promo, nil, 0)

	if s.Prev() {
		t.Error("Prev at first step must not move")
	}
	if !s.Next() {
		t.Error("Next from first step should move")
	}
	if s.Next() {
		t.Error("Next at last step must not move")
	}
	if got := s.Step(); got != 1 {
		t.Errorf("expected step 1, got %d", got)
	}

	s.SetStep(99)
	if got := s.Step(); got != 1 {
		t.Errorf("SetStep should clamp to last step, got %d", got)
	}
	s.SetStep(-4)
	if got := s.Step(); got != 0 {
		t.Errorf("SetStep should clamp to first step, got %d", got)
	}
}

func TestCategoricalOnePerCategory(t *testing.T) {
	state := cart.NewState()
	promo := &promotion.Promotion{
		ID:                "promo-c",
		Title:             "Po jedan iz svake grupe",
		RequiredItemCount: 2,
		FixedPrice:        4000,
		Active:            true,
		Mode:              promotion.ModeCategorical,
	}
	shirt := eligibleProduct("p1", "majice", promo.ID, 1200)
	shirt2 := eligibleProduct("p2", "majice", promo.ID, 1500)
	pants := eligibleProduct("p3", "pantalone", promo.ID, 2500)

	s := Start(state, promo, []catalog.Product{shirt, shirt2, pants}, 0)

	s.AddQuantityItem(shirt, "", nil, 1)
	s.AddQuantityItem(shirt2, "", nil, 1)

	if got := state.PromoQuantity(); got != 1 {
		t.Errorf("second add in same category must be rejected, got quantity %d", got)
	}

	s.AddQuantityItem(pants, "", nil, 1)
	if !s.IsComplete() {
		t.Error("expected complete bundle with one item per category")
	}
}

func TestSwitchingPromotionDiscardsOldSelection(t *testing.T) {
	state := cart.NewState()
	first := quantityPromo(3)
	p := eligibleProduct("p1", "majice", first.ID, 1200)

	s := Start(state, first, []catalog.Product{p}, 0)
	s.AddQuantityItem(p, "", nil, 2)

	second := &promotion.Promotion{
		ID:                "promo-other",
		Title:             "Druga akcija",
		RequiredItemCount: 2,
		FixedPrice:        2000,
		Active:            true,
		Mode:              promotion.ModeQuantity,
	}
	Start(state, second, nil, 0)

	if len(state.PromoItems) != 0 {
		t.Errorf("expected old bundle discarded, got %d lines", len(state.PromoItems))
	}
	if state.ActivePromotion.ID != "promo-other" {
		t.Errorf("expected active promotion switched, got %s", state.ActivePromotion.ID)
	}
}

func TestResumeWithoutActivePromotion(t *testing.T) {
	if s := Resume(cart.NewState(), nil); s != nil {
		t.Error("Resume without active promotion should return nil")
	}
}

func TestLegacyModeInference(t *testing.T) {
	state := cart.NewState()

	stepped := &promotion.Promotion{
		ID:                "legacy-s",
		RequiredItemCount: 2,
		Steps: []promotion.BundleStep{
			categoryStep("Prvi", "majice"),
			categoryStep("Drugi", "pantalone"),
		},
	}
	if got := Start(state, stepped, nil, 0).Mode(); got != promotion.ModeSlots {
		t.Errorf("steps present should infer slots mode, got %s", got)
	}

	plain := &promotion.Promotion{ID: "legacy-q", RequiredItemCount: 3}
	products := []catalog.Product{eligibleProduct("p1", "majice", "legacy-q", 1000)}
	if got := Start(cart.NewState(), plain, products, 0).Mode(); got != promotion.ModeQuantity {
		t.Errorf("single category should infer quantity mode, got %s", got)
	}

	multi := &promotion.Promotion{ID: "legacy-c", RequiredItemCount: 2}
	multiProducts := []catalog.Product{
		eligibleProduct("p1", "majice", "legacy-c", 1000),
		eligibleProduct("p2", "pantalone", "legacy-c", 2000),
	}
	if got := Start(cart.NewState(), multi, multiProducts, 0).Mode(); got != promotion.ModeCategorical {
		t.Errorf("matching category count should infer categorical mode, got %s", got)
	}
}

func TestQuantityAddIgnoresProductOutsidePromotion(t *testing.T) {
	state := cart.NewState()
	promo := quantityPromo(3)
	tagged := eligibleProduct("p1", "majice", promo.ID, 1200)
	untagged := eligibleProduct("p2", "majice", "", 900)
	foreign := eligibleProduct("p3", "majice", "promo-other", 900)
	unavailable := eligibleProduct("p4", "majice", promo.ID, 800)
	unavailable.Available = false

	s := Start(state, promo, []catalog.Product{tagged}, 0)

	s.AddQuantityItem(untagged, "", nil, 1)
	s.AddQuantityItem(foreign, "", nil, 1)
	s.AddQuantityItem(unavailable, "", nil, 1)
	if got := state.PromoQuantity(); got != 0 {
		t.Errorf("products outside the promotion must not count, got quantity %d", got)
	}

	if s.EligibleAnyStep(untagged) || s.EligibleAnyStep(foreign) {
		t.Error("products outside the promotion must not be selectable")
	}
	if !s.EligibleAnyStep(tagged) {
		t.Error("tagged product must be selectable")
	}

	s.AddQuantityItem(tagged, "", nil, 1)
	if got := state.PromoQuantity(); got != 1 {
		t.Errorf("tagged product must count, got quantity %d", got)
	}
}

func TestCategoricalRejectsOtherPromotionProduct(t *testing.T) {
	state := cart.NewState()
	promo := &promotion.Promotion{
		ID:                "promo-c",
		Title:             "Po jedan iz svake grupe",
		RequiredItemCount: 2,
		FixedPrice:        4000,
		Active:            true,
		Mode:              promotion.ModeCategorical,
	}
	shirt := eligibleProduct("p1", "majice", promo.ID, 1200)
	pants := eligibleProduct("p2", "pantalone", promo.ID, 2500)
	foreign := eligibleProduct("p3", "majice", "promo-other", 1000)

	s := Start(state, promo, []catalog.Product{shirt, pants}, 0)

	if got := s.Categories(); len(got) != 2 {
		t.Fatalf("expected the two categories of the promotion's products, got %v", got)
	}
	if s.Eligible(0, foreign) {
		t.Error("product of another promotion must not pass a matching category")
	}

	s.AddQuantityItem(foreign, "", nil, 1)
	if got := state.PromoQuantity(); got != 0 {
		t.Errorf("product of another promotion must not count, got quantity %d", got)
	}

	s.AddQuantityItem(shirt, "", nil, 1)
	s.AddQuantityItem(pants, "", nil, 1)
	if !s.IsComplete() {
		t.Error("expected complete bundle from the promotion's own products")
	}
}
