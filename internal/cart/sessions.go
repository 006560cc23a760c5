package cart

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/storage"
)

// DefaultMaxSessions bounds how many carts are held in memory
const DefaultMaxSessions = 10000

// Sessions hands out one Store per browser session. Each session's cart is stored
// under "<baseKey>:<sessionID>".
//
// At most maxSessions Stores are kept; the least recently used one is dropped when
// the limit is hit. Its cart stays in storage and is rehydrated on the next Get,
// only the drawer visibility flag is lost.
type Sessions struct {
	mu      sync.Mutex
	stores  *lru.Cache
	storage storage.Storage
	baseKey string
	logger  *zap.Logger
}

// NewSessions creates the registry. maxSessions < 1 uses DefaultMaxSessions.
func NewSessions(s storage.Storage, baseKey string, maxSessions int, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseKey == "" {
		baseKey = DefaultKey
	}
	if maxSessions < 1 {
		maxSessions = DefaultMaxSessions
	}

	stores, err := lru.NewWithEvict(maxSessions, func(key, _ interface{}) {
		logger.Debug("Evicted idle cart session", zap.Any("session_id", key))
	})
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Sessions{
		stores:  stores,
		storage: s,
		baseKey: baseKey,
		logger:  logger,
	}
}

// Key returns the storage key used for sessionID
func (s *Sessions) Key(sessionID string) string {
	return s.baseKey + ":" + sessionID
}

// Get returns the Store for sessionID, rehydrating it from storage on first use
func (s *Sessions) Get(ctx context.Context, sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.stores.Get(sessionID); ok {
		return v.(*Store)
	}
	logger := s.logger.With(zap.String("session_id", sessionID))
	repo := NewStorageRepository(s.storage, s.Key(sessionID), logger)
	st := NewStore(ctx, repo, logger)
	s.stores.Add(sessionID, st)
	return st
}

// Forget drops the in-memory Store for sessionID; the stored cart is kept
func (s *Sessions) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores.Remove(sessionID)
}

// Len is the number of sessions held in memory
func (s *Sessions) Len() int {
	return s.stores.Len()
}
