package cart

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

func product(id, name string, price int64) catalog.Product {
	return catalog.Product{
		ID:        id,
		Name:      name,
		BasePrice: price,
		Available: true,
	}
}

func TestAddLineMergesSameIdentity(t *testing.T) {
	s := NewState()
	p := product("p1", "Majica", 1200)

	s.AddLine(p, "L", 1, nil, nil)
	s.AddLine(p, "L", 2, nil, nil)

	if len(s.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(s.Items))
	}
	if s.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", s.Items[0].Quantity)
	}
}

func TestAddLineDistinctIdentities(t *testing.T) {
	s := NewState()
	p := product("p1", "Majica", 1200)
	variant := &catalog.Variant{Name: "Crna", Price: 1300}

	s.AddLine(p, "L", 1, nil, nil)
	s.AddLine(p, "XL", 1, nil, nil)
	s.AddLine(p, "L", 1, variant, nil)

	if len(s.Items) != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", len(s.Items))
	}
}

func TestAddLineBackfillsVariant(t *testing.T) {
	s := NewState()
	p := product("p1", "Majica", 1200)

	s.AddLine(p, "L", 1, nil, nil)
	if s.Items[0].Variant != nil {
		t.Fatal("expected nil variant on first add")
	}

	// A later add with a matching identity and a variant fills the gap
	// instead of forking a new line.
	variant := &catalog.Variant{Name: "", Price: 1250}
	s.AddLine(p, "L", 1, variant, nil)
	if len(s.Items) != 1 {
		t.Fatalf("expected merge, got %d lines", len(s.Items))
	}
	if s.Items[0].Variant == nil {
		t.Error("expected variant backfilled on merge")
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := NewState()
	p := product("p1", "Majica", 1200)
	s.AddLine(p, "L", 2, nil, nil)

	s.UpdateQuantity("p1", "L", 5)
	if s.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", s.Items[0].Quantity)
	}

	s.UpdateQuantity("p1", "L", 0)
	if len(s.Items) != 0 {
		t.Errorf("expected line removed at quantity 0, got %d lines", len(s.Items))
	}
}

func TestRemoveLineAbsentIsNoop(t *testing.T) {
	s := NewState()
	p := product("p1", "Majica", 1200)
	s.AddLine(p, "L", 1, nil, nil)

	s.RemoveLine("missing", "L")
	s.RemoveLine("p1", "XL")

	if len(s.Items) != 1 {
		t.Errorf("expected untouched cart, got %d lines", len(s.Items))
	}
}

func TestTotalPriceRegularLines(t *testing.T) {
	s := NewState()
	s.AddLine(product("p1", "Majica", 1200), "L", 2, nil, nil)
	s.AddLine(product("p2", "Duks", 2500), "", 1, nil, nil)

	if got := s.TotalPrice(); got != 4900 {
		t.Errorf("TotalPrice = %d, want 4900", got)
	}
	if got := s.ShippingCost(); got != 500 {
		t.Errorf("ShippingCost = %d, want 500", got)
	}
}

func TestTotalPriceVariantOverride(t *testing.T) {
	s := NewState()
	variant := &catalog.Variant{Name: "Premium", Price: 1800}
	s.AddLine(product("p1", "Majica", 1200), "L", 2, variant, nil)

	if got := s.TotalPrice(); got != 3600 {
		t.Errorf("TotalPrice = %d, want 3600", got)
	}
}

func TestTotalPriceBundleChargedOnce(t *testing.T) {
	s := NewState()
	promo := &promotion.Promotion{
		ID:                "promo1",
		Title:             "3 za 3000",
		RequiredItemCount: 3,
		FixedPrice:        3000,
		Active:            true,
	}
	s.ActivePromotion = promo

	bid := promo.ID
	for _, id := range []string{"p1", "p2", "p3"} {
		s.PromoItems = append(s.PromoItems, Line{
			Product:  product(id, "Artikal", 2000),
			Quantity: 1,
			BundleID: &bid,
			IsPromo:  true,
		})
	}
	s.AddLine(product("p4", "Duks", 2500), "", 1, nil, nil)

	// 2500 regular + 3000 bundle, promo items never priced per unit.
	if got := s.TotalPrice(); got != 5500 {
		t.Errorf("TotalPrice = %d, want 5500", got)
	}
	if got := s.TotalItemCount(); got != 4 {
		t.Errorf("TotalItemCount = %d, want 4", got)
	}
}

func TestClearDropsEverything(t *testing.T) {
	s := NewState()
	s.ActivePromotion = &promotion.Promotion{ID: "promo1", RequiredItemCount: 2, FixedPrice: 1000}
	s.AddLine(product("p1", "Majica", 1200), "L", 1, nil, nil)
	bid := "promo1"
	s.PromoItems = append(s.PromoItems, Line{Product: product("p2", "Duks", 900), Quantity: 1, BundleID: &bid, IsPromo: true})

	s.Clear()

	if !s.IsEmpty() || s.ActivePromotion != nil {
		t.Error("expected empty state after Clear")
	}
}

func TestRemoveBundle(t *testing.T) {
	s := NewState()
	a, b := "bundleA", "bundleB"
	s.PromoItems = []Line{
		{Product: product("p1", "A", 100), Quantity: 1, BundleID: &a, IsPromo: true},
		{Product: product("p2", "B", 100), Quantity: 1, BundleID: &b, IsPromo: true},
	}

	s.RemoveBundle("bundleA")

	if len(s.PromoItems) != 1 || *s.PromoItems[0].BundleID != "bundleB" {
		t.Errorf("expected only bundleB to survive, got %+v", s.PromoItems)
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewState()
	variant := &catalog.Variant{Name: "Crna", Price: 1300}
	s.AddLine(product("p1", "Majica", 1200), "L", 2, variant, nil)
	s.ActivePromotion = &promotion.Promotion{
		ID:                "promo1",
		Title:             "3 za 3000",
		RequiredItemCount: 3,
		FixedPrice:        3000,
	}
	step := 1
	bid := "promo1"
	s.PromoItems = []Line{
		{Product: product("p2", "Duks", 900), Quantity: 1, BundleID: &bid, IsPromo: true, StepIndex: &step},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(s.Items, restored.Items) {
		t.Errorf("items diverged after round trip:\n%+v\n%+v", s.Items, restored.Items)
	}
	if !reflect.DeepEqual(s.PromoItems, restored.PromoItems) {
		t.Errorf("promo items diverged after round trip:\n%+v\n%+v", s.PromoItems, restored.PromoItems)
	}
	if restored.ActivePromotion == nil || restored.ActivePromotion.ID != "promo1" {
		t.Error("active promotion lost in round trip")
	}
	if restored.TotalPrice() != s.TotalPrice() {
		t.Errorf("total diverged: %d vs %d", restored.TotalPrice(), s.TotalPrice())
	}
}
