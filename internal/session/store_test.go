package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, ttl), mr
}

func TestCreateAndGet(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	_, err = uuid.Parse(token)
	require.NoError(t, err, "token should be a uuid")

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.UserID)
	assert.WithinDuration(t, time.Now().UTC(), sess.CreatedAt, time.Minute)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Hour, mr.TTL(keys[0]))
}

func TestGet_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_MalformedToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying again, or destroying junk, stays a no-op.
	assert.NoError(t, store.Destroy(ctx, token))
	assert.NoError(t, store.Destroy(ctx, "not-a-uuid"))
}

func TestExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Keys must be derived from the token hash; a dump of the store should never
// contain a token a client could replay.
func TestRawTokenNeverStored(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)

	token, err := store.Create(context.Background(), 42)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "session:"))
	assert.NotContains(t, keys[0], token)
	assert.NotContains(t, mr.Dump(), token)
}

func TestTokensAreUnique(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	first, err := store.Create(ctx, 1)
	require.NoError(t, err)
	second, err := store.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, mr.Keys(), 2)
}
