package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/api/handlers"
	"github.com/warungmanto/storefront/internal/api/middleware"
	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/catalog"
	"github.com/warungmanto/storefront/internal/checkout"
	"github.com/warungmanto/storefront/internal/config"
)

// Services aggregates what the handlers depend on
type Services struct {
	Catalog  *catalog.Service
	Sessions *cart.Sessions
	Checkout *checkout.Builder
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.Checkout.ShopName + " storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/products",
				"GET /v1/products/:id",
				"GET /v1/categories",
				"POST /v1/pricing/quote",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"PUT /v1/cart/items/:productId",
				"DELETE /v1/cart/items/:productId",
				"DELETE /v1/cart",
				"POST /v1/checkout",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(svc.Catalog, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(svc.Catalog, logger))
		v1.GET("/categories", handlers.HandleListCategories(svc.Catalog, logger))
		v1.POST("/pricing/quote", handlers.HandleQuote(logger))

		// Cart routes are scoped to the caller's session
		sessionRoutes := v1.Group("")
		sessionRoutes.Use(middleware.SessionMiddleware(cfg.Cart.SessionCookie, cfg.Environment == "production", logger))
		{
			sessionRoutes.GET("/cart", handlers.HandleGetCart(svc.Sessions, logger))
			sessionRoutes.DELETE("/cart", handlers.HandleClearCart(svc.Sessions, logger))
			sessionRoutes.POST("/cart/items", handlers.HandleAddCartItem(svc.Sessions, svc.Catalog, logger))
			sessionRoutes.PUT("/cart/items/:productId", handlers.HandleUpdateCartItem(svc.Sessions, logger))
			sessionRoutes.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(svc.Sessions, logger))
			sessionRoutes.POST("/cart/open", handlers.HandleCartVisibility(svc.Sessions, (*cart.Store).Open, logger))
			sessionRoutes.POST("/cart/close", handlers.HandleCartVisibility(svc.Sessions, (*cart.Store).Close, logger))
			sessionRoutes.POST("/cart/toggle", handlers.HandleCartVisibility(svc.Sessions, (*cart.Store).Toggle, logger))
			sessionRoutes.POST("/checkout", handlers.HandleCheckout(svc.Sessions, svc.Checkout, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
