package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/storage"
)

// DefaultKey is the storage key of the cart
const DefaultKey = "warung_cart"

// Repository persists the full list of cart lines
type Repository interface {
	// Load returns the persisted lines. Unreadable content yields an empty cart, not an error.
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}

// StorageRepository keeps the cart as a JSON array under one storage key
type StorageRepository struct {
	storage storage.Storage
	key     string
	logger  *zap.Logger
}

// NewStorageRepository creates a repository for key
func NewStorageRepository(s storage.Storage, key string, logger *zap.Logger) *StorageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = DefaultKey
	}
	return &StorageRepository{storage: s, key: key, logger: logger}
}

// Key returns the storage key the cart lives under
func (r *StorageRepository) Key() string {
	return r.key
}

func (r *StorageRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	raw, ok, err := r.storage.GetItem(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart %s: %w", r.key, err)
	}
	if !ok || raw == "" {
		return []domain.CartItem{}, nil
	}

	items, valid := ParseItems(raw)
	if !valid {
		r.logger.Debug("Discarding unreadable stored cart", zap.String("key", r.key))
		if err := r.storage.RemoveItem(ctx, r.key); err != nil {
			r.logger.Warn("Failed to remove unreadable cart", zap.Error(err), zap.String("key", r.key))
		}
		return []domain.CartItem{}, nil
	}
	return items, nil
}

func (r *StorageRepository) Save(ctx context.Context, items []domain.CartItem) error {
	raw, err := EncodeItems(items)
	if err != nil {
		return err
	}
	if err := r.storage.SetItem(ctx, r.key, raw); err != nil {
		return fmt.Errorf("failed to write cart %s: %w", r.key, err)
	}
	return nil
}

// ParseItems decodes a stored cart. valid is false for the sentinel strings
// "undefined" and "null", stringified objects, malformed JSON and non-arrays.
func ParseItems(raw string) (items []domain.CartItem, valid bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "undefined" || trimmed == "null" || strings.HasPrefix(trimmed, "[object") {
		return []domain.CartItem{}, false
	}
	if !strings.HasPrefix(trimmed, "[") {
		return []domain.CartItem{}, false
	}

	var decoded []domain.CartItem
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return []domain.CartItem{}, false
	}
	out := make([]domain.CartItem, 0, len(decoded))
	for _, it := range decoded {
		if it.PricingTiers == nil {
			it.PricingTiers = []domain.PricingTier{}
		}
		out = append(out, it)
	}
	return out, true
}

// EncodeItems renders lines in the stored JSON form. A nil slice encodes as [].
func EncodeItems(items []domain.CartItem) (string, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}
