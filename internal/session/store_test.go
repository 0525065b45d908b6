package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found := store.Get(ctx, "s1", "programs")
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "s1", "programs", []byte(`[1,2]`)))

	value, found := store.Get(ctx, "s1", "programs")
	assert.True(t, found)
	assert.Equal(t, []byte(`[1,2]`), value)

	// sessions are isolated
	_, found = store.Get(ctx, "s2", "programs")
	assert.False(t, found)

	assert.NoError(t, store.Close())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(RedisConfig{
		Host: mr.Host(),
		Port: mr.Port(),
		TTL:  time.Hour,
	})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, found := store.Get(ctx, "s1", "programs")
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "s1", "programs", []byte(`[{"code":"AA"}]`)))

	value, found := store.Get(ctx, "s1", "programs")
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"code":"AA"}]`), value)

	// entries carry the configured TTL
	assert.Equal(t, time.Hour, mr.TTL("sess:s1:programs"))

	// cache entries expire
	mr.FastForward(2 * time.Hour)
	_, found = store.Get(ctx, "s1", "programs")
	assert.False(t, found)
}

func TestRedisStore_ConnectFailure(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Host: "127.0.0.1", Port: "1", TTL: time.Hour})
	assert.Error(t, err)
}
