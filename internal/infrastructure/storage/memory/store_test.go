package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfcsearch/widget-runtime/internal/infrastructure/storage/memory"
)

func TestStore_SetGetDelete(t *testing.T) {
	// Arrange
	store := memory.NewStore()
	ctx := context.Background()

	// Act & Assert
	_, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "key", "value"))

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	deleted, err := store.Delete(ctx, "key")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "key")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, store.Close())
}
