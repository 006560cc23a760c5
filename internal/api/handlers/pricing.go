package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

// QuoteRequest prices an arbitrary base price and tier list
type QuoteRequest struct {
	BasePrice    float64              `json:"base_price" binding:"min=0"`
	PricingTiers []domain.PricingTier `json:"pricing_tiers" binding:"omitempty,dive"`
	Quantity     int                  `json:"quantity"`
}

// HandleQuote handles POST /v1/pricing/quote
func HandleQuote(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": pricing.NewQuote(req.BasePrice, req.PricingTiers, req.Quantity)})
	}
}
