package domain

// Category represents a product category from the product API
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryRef is the short category reference embedded in a product
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PricingTier maps an inclusive quantity range to a unit price.
// MaxQuantity nil means the tier is open-ended.
type PricingTier struct {
	Name        *string `json:"name"`
	MinQuantity int     `json:"min_quantity" binding:"min=0"`
	MaxQuantity *int    `json:"max_quantity" binding:"omitempty,min=0"`
	Price       float64 `json:"price" binding:"min=0"`
}

// Product is the read-only product shape served by the product API
type Product struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description"`
	Unit         string        `json:"unit"`
	BasePrice    float64       `json:"base_price"`
	ImageURL     *string       `json:"image_url"`
	Category     *CategoryRef  `json:"category"`
	PricingTiers []PricingTier `json:"pricing_tiers"`
}

// ProductsPage is one page of the product listing
type ProductsPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}

// CartItem is one line of the cart. Name, unit, prices and tiers are a snapshot
// taken when the product was first added. JSON keys match the browser cart.
type CartItem struct {
	ProductID    string        `json:"productId"`
	Name         string        `json:"name"`
	Unit         string        `json:"unit"`
	BasePrice    float64       `json:"basePrice"`
	ImageURL     *string       `json:"imageUrl"`
	PricingTiers []PricingTier `json:"pricingTiers"`
	Quantity     int           `json:"quantity"`
}

// CartItemFromProduct snapshots a product into a cart line without quantity
func CartItemFromProduct(p Product) CartItem {
	tiers := make([]PricingTier, len(p.PricingTiers))
	copy(tiers, p.PricingTiers)
	return CartItem{
		ProductID:    p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		BasePrice:    p.BasePrice,
		ImageURL:     p.ImageURL,
		PricingTiers: tiers,
	}
}

// CustomerInfo is collected at checkout
type CustomerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
