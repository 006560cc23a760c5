package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/warungmanto/storefront/internal/config"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.GetItem(ctx, "warung_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, "warung_cart", `[{"productId":"p1"}]`))
	v, ok, err := s.GetItem(ctx, "warung_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"productId":"p1"}]`, v)

	require.NoError(t, s.SetItem(ctx, "warung_cart", `[]`))
	v, _, err = s.GetItem(ctx, "warung_cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.SetItem(ctx, "warung_cart:other", `x`))
	require.NoError(t, s.RemoveItem(ctx, "warung_cart"))
	_, ok, err = s.GetItem(ctx, "warung_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.GetItem(ctx, "warung_cart:other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	require.NoError(t, s.RemoveItem(ctx, "missing"))
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "carts")
	s, err := NewFileStorage(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	exerciseStorage(t, s)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestFileStorage_KeysCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetItem(context.Background(), "../../etc/evil", "v"))
	assert.Equal(t, dir, filepath.Dir(s.path("../../etc/evil")))
}

func TestSQLStorage_SQLite(t *testing.T) {
	db, err := NewSQLiteConnection(":memory:")
	require.NoError(t, err)

	s, err := NewSQLStorage(context.Background(), db, DialectSQLite, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	exerciseStorage(t, s)
	// migrations are idempotent
	require.NoError(t, s.RunMigrations(context.Background()))
}

func TestSQLStorage_Rebind(t *testing.T) {
	pg := &SQLStorage{dialect: DialectPostgres}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &SQLStorage{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ?", lite.rebind("SELECT ?"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{Driver: config.StorageMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(ctx, config.StorageConfig{Driver: config.StorageFile, FileDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	s, err = Open(ctx, config.StorageConfig{Driver: config.StorageSQLite, SQLite: filepath.Join(t.TempDir(), "db", "carts.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLStorage{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StorageConfig{Driver: "mongo"}, nil)
	assert.Error(t, err)
}
