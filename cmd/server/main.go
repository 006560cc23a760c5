package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/api"
	"github.com/warungmanto/storefront/internal/cart"
	"github.com/warungmanto/storefront/internal/catalog"
	"github.com/warungmanto/storefront/internal/checkout"
	"github.com/warungmanto/storefront/internal/config"
	"github.com/warungmanto/storefront/internal/logging"
	"github.com/warungmanto/storefront/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting storefront server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	store, err := storage.Open(context.Background(), cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to open cart storage", zap.Error(err))
	}
	defer store.Close()

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.PathPrefix, cfg.Catalog.Timeout, logger)
	services := &api.Services{
		Catalog:  catalog.NewService(client, logger),
		Sessions: cart.NewSessions(store, cfg.Cart.StorageKey, cfg.Cart.MaxSessions, logger),
		Checkout: checkout.NewBuilder(cfg.Checkout.ShopName, cfg.Checkout.WhatsAppURL, cfg.Checkout.WhatsAppNumber),
	}

	router := api.NewRouter(cfg, services, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
