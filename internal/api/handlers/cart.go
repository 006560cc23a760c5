package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/api/middleware"
	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/catalog"
	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

// AddCartItemRequest adds a product to the cart. When only product_id is given the
// snapshot is taken from the catalog.
type AddCartItemRequest struct {
	ProductID    string               `json:"product_id" binding:"required"`
	Name         string               `json:"name"`
	Unit         string               `json:"unit"`
	BasePrice    float64              `json:"base_price" binding:"min=0"`
	ImageURL     *string              `json:"image_url,omitempty"`
	PricingTiers []domain.PricingTier `json:"pricing_tiers" binding:"omitempty,dive"`
	Quantity     int                  `json:"quantity"`
}

// UpdateCartItemRequest sets the absolute quantity of a line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLine is a cart line with its resolved price
type CartLine struct {
	domain.CartItem
	PricePerUnit          float64 `json:"price_per_unit"`
	PricePerUnitFormatted string  `json:"price_per_unit_formatted"`
	TierName              string  `json:"tier_name"`
	TierApplied           bool    `json:"tier_applied"`
	Subtotal              float64 `json:"subtotal"`
	SubtotalFormatted     string  `json:"subtotal_formatted"`
}

// CartResponse is the cart drawer payload
type CartResponse struct {
	Items               []CartLine `json:"items"`
	TotalItems          int        `json:"total_items"`
	TotalPrice          float64    `json:"total_price"`
	TotalPriceFormatted string     `json:"total_price_formatted"`
	IsOpen              bool       `json:"is_open"`
}

// BuildCartResponse renders the current state of store
func BuildCartResponse(store *cart.Store) CartResponse {
	items := store.Items()
	lines := make([]CartLine, 0, len(items))
	totalItems := 0
	for _, it := range items {
		res := pricing.ForItem(it)
		subtotal := res.PricePerUnit * float64(it.Quantity)
		totalItems += it.Quantity
		lines = append(lines, CartLine{
			CartItem:              it,
			PricePerUnit:          res.PricePerUnit,
			PricePerUnitFormatted: pricing.FormatRupiah(res.PricePerUnit),
			TierName:              res.TierName,
			TierApplied:           !res.IsBase(),
			Subtotal:              subtotal,
			SubtotalFormatted:     pricing.FormatRupiah(subtotal),
		})
	}
	total := cart.TotalPrice(items)
	return CartResponse{
		Items:               lines,
		TotalItems:          totalItems,
		TotalPrice:          total,
		TotalPriceFormatted: pricing.FormatRupiah(total),
		IsOpen:              store.IsOpen(),
	}
}

func sessionStore(c *gin.Context, sessions *cart.Sessions) (*cart.Store, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
		return nil, false
	}
	return sessions.Get(c.Request.Context(), sessionID), true
}

func respondCart(c *gin.Context, store *cart.Store, err error, logger *zap.Logger) {
	if err != nil {
		logger.Error("Failed to save cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": BuildCartResponse(store)})
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": BuildCartResponse(store)})
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(sessions *cart.Sessions, svc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}

		var item domain.CartItem
		if req.Name == "" {
			product, found := svc.Product(c.Request.Context(), req.ProductID)
			if !found {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			item = domain.CartItemFromProduct(*product)
		} else {
			item = domain.CartItem{
				ProductID:    req.ProductID,
				Name:         req.Name,
				Unit:         req.Unit,
				BasePrice:    req.BasePrice,
				ImageURL:     req.ImageURL,
				PricingTiers: req.PricingTiers,
			}
		}

		err := store.AddItem(c.Request.Context(), item, req.Quantity)
		logger.Info("Cart item added", zap.String("product_id", item.ProductID), zap.Int("quantity", req.Quantity))
		respondCart(c, store, err, logger)
	}
}

// HandleUpdateCartItem handles PUT /v1/cart/items/:productId. Quantities below 1 are ignored.
func HandleUpdateCartItem(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}
		err := store.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
		respondCart(c, store, err, logger)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:productId
func HandleRemoveCartItem(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}
		err := store.RemoveItem(c.Request.Context(), c.Param("productId"))
		respondCart(c, store, err, logger)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}
		err := store.ClearCart(c.Request.Context())
		respondCart(c, store, err, logger)
	}
}

// HandleCartVisibility handles POST /v1/cart/open, /close and /toggle
func HandleCartVisibility(sessions *cart.Sessions, action func(*cart.Store), logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, sessions)
		if !ok {
			return
		}
		action(store)
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"is_open": store.IsOpen()}})
	}
}
