package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/pfcsearch/widget-runtime/internal/infrastructure/storage/redis"
)

func setupMiniredis(t *testing.T) *redisstore.Store {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	store, err := redisstore.NewStore(redisstore.Config{
		Host:     mr.Host(),
		Port:     mr.Port(),
		Password: "",
		DB:       0,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})

	return store
}

func TestNewStore_ConnectionFailure(t *testing.T) {
	// Act
	store, err := redisstore.NewStore(redisstore.Config{
		Host: "localhost",
		Port: "1", // nothing listens here
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestStore_SetAndGet(t *testing.T) {
	// Arrange
	store := setupMiniredis(t)
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, "pfc:widget:session:fing", "session-9"))
	value, ok, err := store.Get(ctx, "pfc:widget:session:fing")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session-9", value)
}

func TestStore_GetNotFound(t *testing.T) {
	// Arrange
	store := setupMiniredis(t)

	// Act
	value, ok, err := store.Get(context.Background(), "missing")

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_Delete(t *testing.T) {
	// Arrange
	store := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", "value"))

	// Act
	deleted, err := store.Delete(ctx, "key")
	require.NoError(t, err)

	missing, err := store.Delete(ctx, "key")
	require.NoError(t, err)

	// Assert
	assert.True(t, deleted)
	assert.False(t, missing)
}

func TestStore_Ping(t *testing.T) {
	// Arrange
	store := setupMiniredis(t)

	// Act & Assert
	assert.NoError(t, store.Ping(context.Background()))
}
