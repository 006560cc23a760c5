package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Dialect selects placeholder style
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS cart_storage (
		storage_key TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// SQLStorage keeps key/value pairs in the cart_storage table
type SQLStorage struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

// NewSQLStorage creates the table when missing
func NewSQLStorage(ctx context.Context, db *sql.DB, dialect Dialect, logger *zap.Logger) (*SQLStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SQLStorage{db: db, dialect: dialect, logger: logger}
	if err := s.RunMigrations(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// RunMigrations creates the cart_storage table
func (s *SQLStorage) RunMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create cart_storage: %w", err)
	}
	return nil
}

// rebind turns ? placeholders into $n for postgres
func (s *SQLStorage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	query := s.rebind(`SELECT value FROM cart_storage WHERE storage_key = ?`)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to get storage item", zap.Error(err), zap.String("key", key))
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStorage) SetItem(ctx context.Context, key, value string) error {
	query := s.rebind(`
		INSERT INTO cart_storage (storage_key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (storage_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.logger.Error("Failed to set storage item", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (s *SQLStorage) RemoveItem(ctx context.Context, key string) error {
	query := s.rebind(`DELETE FROM cart_storage WHERE storage_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		s.logger.Error("Failed to remove storage item", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
