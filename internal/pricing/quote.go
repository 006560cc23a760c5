package pricing

import "github.com/warungmanto/storefront/internal/domain"

// Quote is the live price panel for a product at a chosen quantity
type Quote struct {
	Quantity              int     `json:"quantity"`
	PricePerUnit          float64 `json:"price_per_unit"`
	TierName              string  `json:"tier_name"`
	TierApplied           bool    `json:"tier_applied"`
	Subtotal              float64 `json:"subtotal"`
	PricePerUnitFormatted string  `json:"price_per_unit_formatted"`
	SubtotalFormatted     string  `json:"subtotal_formatted"`
	PriceUnavailable      bool    `json:"price_unavailable"`
}

// NewQuote prices quantity units. Quantities below 1 are quoted as 1.
func NewQuote(basePrice float64, tiers []domain.PricingTier, quantity int) Quote {
	if quantity < 1 {
		quantity = 1
	}
	res := Calculate(basePrice, tiers, quantity)
	subtotal := res.PricePerUnit * float64(quantity)
	return Quote{
		Quantity:              quantity,
		PricePerUnit:          res.PricePerUnit,
		TierName:              res.TierName,
		TierApplied:           !res.IsBase(),
		Subtotal:              subtotal,
		PricePerUnitFormatted: FormatRupiah(res.PricePerUnit),
		SubtotalFormatted:     FormatRupiah(subtotal),
		PriceUnavailable:      PriceUnavailable(basePrice),
	}
}

// QuoteProduct prices quantity units of a catalog product
func QuoteProduct(p domain.Product, quantity int) Quote {
	return NewQuote(p.BasePrice, p.PricingTiers, quantity)
}
