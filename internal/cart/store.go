package cart

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

// Store owns the lines of one cart. Every mutation is written through the repository
// before the call returns.
type Store struct {
	mu     sync.Mutex
	items  []domain.CartItem
	isOpen bool
	repo   Repository
	logger *zap.Logger
}

// NewStore rehydrates a cart from repo. A failing backend starts the cart empty.
func NewStore(ctx context.Context, repo Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{repo: repo, logger: logger, items: []domain.CartItem{}}

	items, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load stored cart, starting empty", zap.Error(err))
		return s
	}
	if items != nil {
		s.items = items
	}
	return s
}

// AddItem merges quantity into an existing line for item.ProductID, keeping its snapshot,
// or appends a new line. Quantities below 1 add a single unit. A merged quantity
// saturates at math.MaxInt.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity = addQuantity(s.items[i].Quantity, quantity)
			return s.persist(ctx)
		}
	}

	if item.PricingTiers == nil {
		item.PricingTiers = []domain.PricingTier{}
	} else {
		item.PricingTiers = append([]domain.PricingTier(nil), item.PricingTiers...)
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	return s.persist(ctx)
}

// RemoveItem deletes the line for productID. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.CartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity of a line. Values below 1 are ignored;
// removal goes through RemoveItem.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
	return s.persist(ctx)
}

// ClearCart removes every line
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.CartItem{}
	return s.persist(ctx)
}

// Items returns a copy of the lines in cart order
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Item returns the line for productID
func (s *Store) Item(productID string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ProductID == productID {
			return cloneItems([]domain.CartItem{it})[0], true
		}
	}
	return domain.CartItem{}, false
}

// TotalItems is the sum of line quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total = addQuantity(total, it.Quantity)
	}
	return total
}

// TotalPrice sums tier-adjusted subtotals
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPrice(s.items)
}

func (s *Store) Open() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

func (s *Store) Toggle() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	s.mu.Unlock()
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// persist must be called with mu held
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.items); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err), zap.Int("line_count", len(s.items)))
		return err
	}
	return nil
}

// TotalPrice sums the tier-adjusted subtotal of every line
func TotalPrice(items []domain.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += pricing.ItemSubtotal(it)
	}
	return total
}

// addQuantity adds quantities, saturating at math.MaxInt instead of wrapping
func addQuantity(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		it.PricingTiers = append([]domain.PricingTier{}, it.PricingTiers...)
		out[i] = it
	}
	return out
}
