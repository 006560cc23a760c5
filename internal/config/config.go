package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Catalog     CatalogConfig
	Checkout    CheckoutConfig
	Cart        CartConfig
	Storage     StorageConfig
}

// CatalogConfig is used to call the remote product API
type CatalogConfig struct {
	BaseURL    string // CATALOG_API_BASE, e.g. https://api.warungmanto.store
	PathPrefix string // CATALOG_PATH_PREFIX, e.g. /public
	Timeout    time.Duration
}

// CheckoutConfig describes where WhatsApp orders are sent
type CheckoutConfig struct {
	ShopName       string
	WhatsAppNumber string
	WhatsAppURL    string
}

type CartConfig struct {
	StorageKey    string // CART_KEY: base key of the persisted cart
	SessionCookie string
	MaxSessions   int // CART_MAX_SESSIONS: carts held in memory before the least recently used is dropped
}

type StorageConfig struct {
	Driver   string
	FileDir  string
	RedisURL string
	SQLite   string
	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageMemory)

	viper.AutomaticEnv()

	// .env is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("CATALOG_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("CATALOG_TIMEOUT: %w", err)
	}

	maxSessions, err := strconv.Atoi(getEnvOrViper("CART_MAX_SESSIONS", "10000"))
	if err != nil {
		return nil, fmt.Errorf("CART_MAX_SESSIONS: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Catalog: CatalogConfig{
			BaseURL:    strings.TrimSpace(getEnvOrViper("CATALOG_API_BASE", "https://api.warungmanto.store")),
			PathPrefix: strings.TrimSpace(getEnvOrViper("CATALOG_PATH_PREFIX", "/public")),
			Timeout:    timeout,
		},
		Checkout: CheckoutConfig{
			ShopName:       getEnvOrViper("SHOP_NAME", "Warung Manto"),
			WhatsAppNumber: strings.TrimSpace(getEnvOrViper("WHATSAPP_NUMBER", "6281234567890")),
			WhatsAppURL:    strings.TrimSpace(getEnvOrViper("WHATSAPP_BASE_URL", "https://api.whatsapp.com/send")),
		},
		Cart: CartConfig{
			StorageKey:    getEnvOrViper("CART_KEY", "warung_cart"),
			SessionCookie: getEnvOrViper("CART_SESSION_COOKIE", "cart_session"),
			MaxSessions:   maxSessions,
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(strings.TrimSpace(getEnvOrViper("STORAGE_DRIVER", StorageMemory))),
			FileDir:  getEnvOrViper("STORAGE_FILE_DIR", "./data/carts"),
			RedisURL: getEnvOrViper("REDIS_URL", "redis://localhost:6379/0"),
			SQLite:   getEnvOrViper("SQLITE_PATH", "./data/carts.db"),
			Database: DatabaseConfig{
				Host:     getEnvOrViper("DB_HOST", "localhost"),
				Port:     getEnvOrViper("DB_PORT", "5432"),
				User:     getEnvOrViper("DB_USER", "postgres"),
				Password: getEnvOrViper("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrViper("DB_NAME", "storefront"),
				SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the service cannot run without
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageRedis, StoragePostgres, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_API_BASE is required")
	}
	if c.Checkout.WhatsAppNumber == "" {
		return fmt.Errorf("WHATSAPP_NUMBER is required")
	}
	if c.Cart.StorageKey == "" {
		return fmt.Errorf("CART_KEY is required")
	}
	if c.Cart.MaxSessions < 1 {
		return fmt.Errorf("CART_MAX_SESSIONS must be at least 1")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
