package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestOpenStorageSeedsMemory(t *testing.T) {
	ctx := context.Background()
	store, err := openStorage(ctx, config.AppConfig{
		StorageDriver: config.StorageMemory,
		SeedDemoData:  true,
	}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	empty, err := storage.IsEmpty(ctx, store)
	require.NoError(t, err)
	assert.False(t, empty)

	seeded, err := seedDemo(ctx, store, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, seeded, "second seed must be skipped")
}

func TestOpenStorageWrapsCache(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := openStorage(context.Background(), config.AppConfig{
		StorageDriver: config.StorageMemory,
		RedisURL:      "redis://" + mr.Addr(),
	}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*storage.CachedStorage)
	assert.True(t, ok)
}

func TestOpenStorageSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := openStorage(ctx, config.AppConfig{
		StorageDriver: config.StorageSQLite,
		DatabasePath:  t.TempDir() + "/portfolio.db",
		SeedDemoData:  true,
	}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	writings, err := store.ListWritings(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, writings)
}

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	hashPasswordCmd.SetOut(&out)
	hashPasswordCmd.SetIn(strings.NewReader("s3cret\n"))

	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
