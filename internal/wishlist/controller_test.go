package wishlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWishlistBackend struct {
	mu          sync.Mutex
	items       []models.WishlistItem
	fetchCalls  int
	addCalls    int
	removeCalls int
	addErr      error
	removeErr   error

	// when set, AddWishlistEntry signals entered and blocks until released
	entered  chan struct{}
	released chan struct{}
}

func (f *fakeWishlistBackend) FetchWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	return append([]models.WishlistItem(nil), f.items...), nil
}

func (f *fakeWishlistBackend) AddWishlistEntry(ctx context.Context, propertyID string) (string, error) {
	f.mu.Lock()
	f.addCalls++
	entered, released, err := f.entered, f.released, f.addErr
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-released
	}
	if err != nil {
		return "", err
	}
	return "entry-" + propertyID, nil
}

func (f *fakeWishlistBackend) RemoveWishlistEntry(ctx context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return f.removeErr
}

func TestControllerLoadBuildsIndex(t *testing.T) {
	api := &fakeWishlistBackend{items: []models.WishlistItem{
		{ID: "e1", PropertyID: "p1"},
		{ID: "e2", PropertyID: "p2"},
	}}
	ctrl := NewController(api, nil, "user-1")

	require.NoError(t, ctrl.Load(context.Background()))
	assert.True(t, ctrl.Loaded())
	assert.Equal(t, 2, ctrl.Total())
	assert.True(t, ctrl.IsWishlisted("p1"))
	assert.True(t, ctrl.IsWishlisted("p2"))
	assert.False(t, ctrl.IsWishlisted("p3"))
	assert.Len(t, ctrl.Items(), 2)
}

func TestControllerToggleAddsAndRemoves(t *testing.T) {
	api := &fakeWishlistBackend{}
	ctrl := NewController(api, nil, "user-1")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.Toggle(ctx, "p1"))
	assert.True(t, ctrl.IsWishlisted("p1"))
	assert.Equal(t, 1, ctrl.Total())
	assert.Equal(t, 1, api.addCalls)

	require.NoError(t, ctrl.Toggle(ctx, "p1"))
	assert.False(t, ctrl.IsWishlisted("p1"))
	assert.Equal(t, 0, ctrl.Total())
	assert.Equal(t, 1, api.removeCalls)
	assert.Empty(t, ctrl.Items())
}

func TestControllerDoubleToggleChangesStateOnce(t *testing.T) {
	api := &fakeWishlistBackend{
		entered:  make(chan struct{}, 1),
		released: make(chan struct{}),
	}
	ctrl := NewController(api, nil, "user-1")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	first := make(chan error, 1)
	go func() { first <- ctrl.Toggle(ctx, "p1") }()

	// wait for the first toggle to be mid-request
	select {
	case <-api.entered:
	case <-time.After(time.Second):
		t.Fatal("first toggle never reached the backend")
	}

	err := ctrl.Toggle(ctx, "p1")
	assert.ErrorIs(t, err, ErrToggleInFlight)

	close(api.released)
	require.NoError(t, <-first)

	assert.Equal(t, 1, api.addCalls, "the rejected toggle issued no request")
	assert.True(t, ctrl.IsWishlisted("p1"))
	assert.Equal(t, 1, ctrl.Total())
}

func TestControllerInFlightLockIsPerProperty(t *testing.T) {
	api := &fakeWishlistBackend{
		entered:  make(chan struct{}, 1),
		released: make(chan struct{}),
	}
	ctrl := NewController(api, nil, "user-1")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	first := make(chan error, 1)
	go func() { first <- ctrl.Toggle(ctx, "p1") }()
	select {
	case <-api.entered:
	case <-time.After(time.Second):
		t.Fatal("first toggle never reached the backend")
	}

	// p1 is locked, but p2 must stay interactive
	api.mu.Lock()
	released := api.released
	api.entered, api.released = nil, nil
	api.mu.Unlock()

	require.NoError(t, ctrl.Toggle(ctx, "p2"))
	assert.True(t, ctrl.IsWishlisted("p2"))

	close(released)
	require.NoError(t, <-first)
}

func TestControllerFailedToggleLeavesStateUntouched(t *testing.T) {
	api := &fakeWishlistBackend{
		items:  []models.WishlistItem{{ID: "e1", PropertyID: "p1"}},
		addErr: errors.New("backend says no"),
	}
	ctrl := NewController(api, nil, "user-1")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	require.Error(t, ctrl.Toggle(ctx, "p2"))
	assert.False(t, ctrl.IsWishlisted("p2"))
	assert.Equal(t, 1, ctrl.Total())

	api.mu.Lock()
	api.removeErr = errors.New("backend says no")
	api.mu.Unlock()

	require.Error(t, ctrl.Toggle(ctx, "p1"))
	assert.True(t, ctrl.IsWishlisted("p1"), "failed removal keeps the entry")
	assert.Equal(t, 1, ctrl.Total())

	// the lock is released after a failure
	api.mu.Lock()
	api.removeErr = nil
	api.mu.Unlock()
	require.NoError(t, ctrl.Toggle(ctx, "p1"))
	assert.False(t, ctrl.IsWishlisted("p1"))
}

func TestControllerReloadDiscardsOptimisticDrift(t *testing.T) {
	api := &fakeWishlistBackend{}
	ctrl := NewController(api, nil, "user-1")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.Toggle(ctx, "p1"))
	require.True(t, ctrl.IsWishlisted("p1"))

	// server fetch wins: the backend no longer reports p1
	require.NoError(t, ctrl.Load(ctx))
	assert.False(t, ctrl.IsWishlisted("p1"))
	assert.Equal(t, 0, ctrl.Total())
}

func TestControllerToggleInvalidatesFetchCache(t *testing.T) {
	store := cache.NewMemoryStore()
	cached := cache.NewKeyed(store)
	api := &fakeWishlistBackend{}
	ctrl := NewController(api, cached, "user-1")
	ctx := context.Background()

	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.Load(ctx))
	assert.Equal(t, 1, api.fetchCalls, "second load serves from cache")

	require.NoError(t, ctrl.Toggle(ctx, "p1"))
	require.NoError(t, ctrl.Load(ctx))
	assert.Equal(t, 2, api.fetchCalls, "toggle invalidates the cached fetch")
}
