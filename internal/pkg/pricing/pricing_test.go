package pricing

import (
	"testing"

	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		want  int64
	}{
		{"zero order", 0, 500},
		{"small order", 1200, 500},
		{"lower boundary", 5000, 500},
		{"just above lower boundary", 5001, 700},
		{"mid tier", 9000, 700},
		{"upper boundary", 12000, 700},
		{"just above upper boundary", 12001, 900},
		{"large order", 50000, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCost(tt.total); got != tt.want {
				t.Errorf("ShippingCost(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestUnitPrice(t *testing.T) {
	product := &catalog.Product{BasePrice: 1500}
	variant := &catalog.Variant{Name: "XL", Price: 1800}

	if got := UnitPrice(product, nil); got != 1500 {
		t.Errorf("UnitPrice without variant = %d, want 1500", got)
	}
	if got := UnitPrice(product, variant); got != 1800 {
		t.Errorf("UnitPrice with variant = %d, want 1800", got)
	}
}

func TestDisplayOldPrice(t *testing.T) {
	old := int64(2000)
	variantOld := int64(2500)

	product := &catalog.Product{BasePrice: 1500, OnSale: true, OldPrice: &old}
	if got := DisplayOldPrice(product, nil); got != 2000 {
		t.Errorf("DisplayOldPrice without variant = %d, want 2000", got)
	}

	variant := &catalog.Variant{Name: "XL", Price: 1800, OldPrice: &variantOld}
	if got := DisplayOldPrice(product, variant); got != 2500 {
		t.Errorf("DisplayOldPrice with variant = %d, want 2500", got)
	}

	bare := &catalog.Product{BasePrice: 1500}
	if got := DisplayOldPrice(bare, nil); got != 0 {
		t.Errorf("DisplayOldPrice without old price = %d, want 0", got)
	}
}
