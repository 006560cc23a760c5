package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/checkout"
	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
	"github.com/warungmanto/storefront/pkg/errors"
)

// CheckoutRequest carries the customer details typed into the cart drawer
type CheckoutRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CheckoutResponse is the WhatsApp handoff
type CheckoutResponse struct {
	URL                 string  `json:"url"`
	Message             string  `json:"message"`
	GrandTotal          float64 `json:"grand_total"`
	GrandTotalFormatted string  `json:"grand_total_formatted"`
}

// HandleCheckout handles POST /v1/checkout. The cart is left untouched.
func HandleCheckout(sessions *cart.Sessions, builder *checkout.Builder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
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

		items := store.Items()
		if err := validateCheckout(req, items); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   err.Error(),
				"details": err.Fields,
			})
			return
		}

		customer := domain.CustomerInfo{Name: strings.TrimSpace(req.Name), Address: strings.TrimSpace(req.Address)}
		out := builder.Build(items, customer, "")
		logger.Info("Checkout link generated",
			zap.Int("line_count", len(items)),
			zap.Float64("grand_total", out.GrandTotal),
		)

		c.JSON(http.StatusOK, gin.H{"data": CheckoutResponse{
			URL:                 out.URL,
			Message:             out.Message,
			GrandTotal:          out.GrandTotal,
			GrandTotalFormatted: pricing.FormatRupiah(out.GrandTotal),
		}})
	}
}

func validateCheckout(req CheckoutRequest, items []domain.CartItem) *errors.ErrValidation {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	if len(items) == 0 {
		fields["items"] = "cart is empty"
	}
	if len(fields) == 0 {
		return nil
	}
	return &errors.ErrValidation{Message: "checkout validation failed", Fields: fields}
}
