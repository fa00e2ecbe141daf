package session

import (
	"context"
	"testing"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndFind(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1", Email: "jamie@example.com"}, "token-1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	found, err := store.Find(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.User.ID)
	assert.Equal(t, "token-1", found.Token)
}

func TestStoreFindUnknownIDIsNil(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)

	found, err := store.Find(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStoreExpiredSessionIsDropped(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), 10*time.Millisecond)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1"}, "token-1")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	found, err := store.Find(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1"}, "token-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.ID))
	found, err := store.Find(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTokenContextRoundTrip(t *testing.T) {
	ctx := WithToken(context.Background(), "bearer-token")
	assert.Equal(t, "bearer-token", TokenFromContext(ctx))
	assert.Equal(t, "", TokenFromContext(context.Background()))
}
