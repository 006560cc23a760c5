package pricing

import (
	"sort"

	"github.com/warungmanto/storefront/internal/domain"
)

// Result is the unit price resolved for a quantity and the label of the tier that produced it
type Result struct {
	PricePerUnit float64 `json:"price_per_unit"`
	TierName     string  `json:"tier_name"`
}

// IsBase reports whether no tier applied
func (r Result) IsBase() bool {
	return r.TierName == domain.TierBasePrice
}

// Calculate resolves the unit price for quantity.
//
// Tiers are scanned by MinQuantity descending, so when ranges overlap the tier with the
// highest threshold wins. Quantities below 1 are treated as 1. The input slice is not
// modified.
func Calculate(basePrice float64, tiers []domain.PricingTier, quantity int) Result {
	if len(tiers) == 0 {
		return Result{PricePerUnit: basePrice, TierName: domain.TierBasePrice}
	}
	if quantity < 1 {
		quantity = 1
	}

	sorted := make([]domain.PricingTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})

	for _, tier := range sorted {
		if quantity < tier.MinQuantity {
			continue
		}
		if tier.MaxQuantity != nil && quantity > *tier.MaxQuantity {
			continue
		}
		name := domain.TierFallbackName
		if tier.Name != nil && *tier.Name != "" {
			name = *tier.Name
		}
		return Result{PricePerUnit: tier.Price, TierName: name}
	}

	return Result{PricePerUnit: basePrice, TierName: domain.TierBasePrice}
}

// Subtotal is the tier-adjusted unit price times quantity
func Subtotal(basePrice float64, tiers []domain.PricingTier, quantity int) float64 {
	return Calculate(basePrice, tiers, quantity).PricePerUnit * float64(quantity)
}

// ForItem resolves the price of a cart line at its own quantity
func ForItem(item domain.CartItem) Result {
	return Calculate(item.BasePrice, item.PricingTiers, item.Quantity)
}

// ItemSubtotal is the tier-adjusted subtotal of a cart line
func ItemSubtotal(item domain.CartItem) float64 {
	return Subtotal(item.BasePrice, item.PricingTiers, item.Quantity)
}

// PriceUnavailable reports whether a product has no published price
func PriceUnavailable(basePrice float64) bool {
	return basePrice == 0
}
