// internal/pkg/pricing/pricing.go
package pricing

import "github.com/projektikatalog/jeftinoRS/internal/domain/catalog"

// Shipping cost tiers in RSD. Orders at or below a threshold pay the
// tier's flat rate.
const (
	ShippingTier1Threshold int64 = 5000
	ShippingTier2Threshold int64 = 12000

	ShippingTier1Cost int64 = 500
	ShippingTier2Cost int64 = 700
	ShippingTier3Cost int64 = 900
)

// UnitPrice returns the effective price of a single unit. A chosen
// variant overrides the product's base price.
func UnitPrice(product *catalog.Product, variant *catalog.Variant) int64 {
	if variant != nil {
		return variant.Price
	}
	return product.BasePrice
}

// DisplayOldPrice returns the crossed-out price to show next to a sale
// price, or 0 when there is none.
func DisplayOldPrice(product *catalog.Product, variant *catalog.Variant) int64 {
	if variant != nil {
		if variant.OldPrice != nil {
			return *variant.OldPrice
		}
		return 0
	}
	if product.OnSale && product.OldPrice != nil {
		return *product.OldPrice
	}
	return 0
}

// ShippingCost returns the flat shipping rate for an order total.
func ShippingCost(totalPrice int64) int64 {
	switch {
	case totalPrice <= ShippingTier1Threshold:
		return ShippingTier1Cost
	case totalPrice <= ShippingTier2Threshold:
		return ShippingTier2Cost
	default:
		return ShippingTier3Cost
	}
}
