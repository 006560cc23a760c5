package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/catalog"
	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

const maxPerPage = 100

// ProductDetailResponse is the product page payload
type ProductDetailResponse struct {
	Product            *domain.Product  `json:"product"`
	PriceUnavailable   bool             `json:"price_unavailable"`
	BasePriceFormatted string           `json:"base_price_formatted"`
	Quote              pricing.Quote    `json:"quote"`
	Related            []domain.Product `json:"related"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(svc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.ProductQuery{
			Search:     c.Query("search"),
			CategoryID: c.Query("category_id"),
			Page:       queryInt(c, "page", 1, 0),
			PerPage:    queryInt(c, "per_page", 20, maxPerPage),
		}
		page := svc.Products(c.Request.Context(), q)
		logger.Debug("Products served", zap.Int("count", len(page.Products)), zap.Int("page", page.Page))
		c.JSON(http.StatusOK, gin.H{"data": page})
	}
}

// HandleGetProduct handles GET /v1/products/:id. ?quantity= drives the live price quote.
func HandleGetProduct(svc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		product, ok := svc.Product(c.Request.Context(), id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		quantity := queryInt(c, "quantity", 1, 0)

		c.JSON(http.StatusOK, gin.H{"data": ProductDetailResponse{
			Product:            product,
			PriceUnavailable:   pricing.PriceUnavailable(product.BasePrice),
			BasePriceFormatted: pricing.FormatBasePrice(product.BasePrice),
			Quote:              pricing.QuoteProduct(*product, quantity),
			Related:            svc.Related(c.Request.Context(), product.ID),
		}})
	}
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(svc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": svc.Categories(c.Request.Context())})
	}
}

// queryInt parses a positive int query parameter; max <= 0 means unbounded
func queryInt(c *gin.Context, key string, def, max int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
