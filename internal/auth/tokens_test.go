package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{AdminID: 1, Username: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "admin", identity.Username)

	identity, err = store.Resolve(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, identity)

	require.NoError(t, store.Revoke(ctx, token))
	identity, err = store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	store := NewMemoryTokenStore(time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{AdminID: 1, Username: "admin"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	identity, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestTokensAreUnique(t *testing.T) {
	store := NewMemoryTokenStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := store.Issue(ctx, Identity{AdminID: 1, Username: "admin"})
		require.NoError(t, err)
		require.False(t, seen[token])
		seen[token] = true
	}
}

func TestRedisTokenStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisTokenStore(client, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{AdminID: 7, Username: "admin"})
	require.NoError(t, err)

	identity, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(7), identity.AdminID)

	require.NoError(t, store.Revoke(ctx, token))
	identity, err = store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestRedisTokenStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisTokenStore(client, time.Minute)
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{AdminID: 1, Username: "admin"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	identity, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}
