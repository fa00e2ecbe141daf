package listings

import (
	"context"
	"io"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []url.Values
	page  *models.PropertyPage
	err   error
}

func (f *fakeFetcher) ListProperties(ctx context.Context, params url.Values) (*models.PropertyPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := url.Values{}
	for k, vs := range params {
		copied[k] = append([]string(nil), vs...)
	}
	f.calls = append(f.calls, copied)
	if f.err != nil {
		return nil, f.err
	}
	if f.page != nil {
		return f.page, nil
	}
	return &models.PropertyPage{}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) lastCall() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestControllerMountHydratesFromURL(t *testing.T) {
	api := &fakeFetcher{page: &models.PropertyPage{Total: 3}}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()

	query, err := url.ParseQuery("search=lakeside&beds=3&sort=price&order=asc")
	require.NoError(t, err)
	require.NoError(t, ctrl.Mount(context.Background(), query))

	f := ctrl.Filters()
	assert.Equal(t, "lakeside", f.Search)
	assert.Equal(t, "3", f.Beds)
	assert.Equal(t, SortPriceAsc, f.SortBy)

	call := api.lastCall()
	assert.Equal(t, "lakeside", call.Get("search"))
	assert.Equal(t, "3", call.Get("beds"))
	assert.Equal(t, "1", call.Get("page"))
}

func TestControllerUpdateFiltersRefetchesPageOne(t *testing.T) {
	api := &fakeFetcher{page: &models.PropertyPage{Total: 30}}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()
	ctx := context.Background()

	require.NoError(t, ctrl.Mount(ctx, url.Values{}))
	require.NoError(t, ctrl.SetPage(ctx, 3))
	require.Equal(t, 3, ctrl.Page())

	next := ctrl.Filters()
	next.Beds = "3"
	require.NoError(t, ctrl.UpdateFilters(ctx, next))

	assert.Equal(t, 1, ctrl.Page(), "a filter change returns to page 1")
	call := api.lastCall()
	assert.Equal(t, "3", call.Get("beds"))
	assert.Equal(t, "1", call.Get("page"))
}

func TestControllerUpdateFiltersPreservesSearch(t *testing.T) {
	api := &fakeFetcher{}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()
	ctx := context.Background()

	query, _ := url.ParseQuery("search=penthouse")
	require.NoError(t, ctrl.Mount(ctx, query))

	next := DefaultFilters()
	next.City = "Bergen"
	require.NoError(t, ctrl.UpdateFilters(ctx, next))

	assert.Equal(t, "penthouse", ctrl.Filters().Search)
	assert.Equal(t, "penthouse", api.lastCall().Get("search"))
}

func TestControllerSearchBurstFetchesOnce(t *testing.T) {
	api := &fakeFetcher{}
	var mu sync.Mutex
	var urls []string
	onURL := func(v url.Values) {
		mu.Lock()
		urls = append(urls, v.Encode())
		mu.Unlock()
	}
	ctrl := NewController(api, nil, onURL, nil)
	defer ctrl.Close()

	require.NoError(t, ctrl.Mount(context.Background(), url.Values{}))
	base := api.callCount()

	for _, text := range []string{"f", "fl", "fla", "flat"} {
		ctrl.SetSearch(text)
	}

	// every keystroke updates the URL immediately
	mu.Lock()
	assert.Equal(t, []string{"search=f", "search=fl", "search=fla", "search=flat"}, urls)
	mu.Unlock()

	time.Sleep(SearchDebounce + 300*time.Millisecond)

	assert.Equal(t, base+1, api.callCount(), "a typing burst yields one deferred fetch")
	call := api.lastCall()
	assert.Equal(t, "flat", call.Get("search"))
	assert.Equal(t, "1", call.Get("page"))
}

func TestControllerSearchNowBypassesDebounce(t *testing.T) {
	api := &fakeFetcher{}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()
	ctx := context.Background()

	require.NoError(t, ctrl.Mount(ctx, url.Values{}))
	base := api.callCount()

	ctrl.SetSearch("cottage")
	require.NoError(t, ctrl.SearchNow(ctx))
	assert.Equal(t, base+1, api.callCount())

	time.Sleep(SearchDebounce + 300*time.Millisecond)
	assert.Equal(t, base+1, api.callCount(), "the pending deferred fetch was cancelled")
	assert.Equal(t, "cottage", api.lastCall().Get("search"))
}

func TestControllerPagination(t *testing.T) {
	api := &fakeFetcher{page: &models.PropertyPage{Total: 25}}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()
	ctx := context.Background()

	require.NoError(t, ctrl.Mount(ctx, url.Values{}))
	assert.Equal(t, 3, ctrl.TotalPages())
	assert.False(t, ctrl.CanPrev())
	assert.True(t, ctrl.CanNext())

	require.NoError(t, ctrl.SetPage(ctx, 3))
	assert.True(t, ctrl.CanPrev())
	assert.False(t, ctrl.CanNext())

	require.NoError(t, ctrl.SetPage(ctx, 0))
	assert.Equal(t, 1, ctrl.Page(), "page is clamped to 1")
}

func TestControllerEmptyState(t *testing.T) {
	api := &fakeFetcher{page: &models.PropertyPage{Total: 0}}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()

	assert.False(t, ctrl.Empty(), "no empty state before the first fetch")

	require.NoError(t, ctrl.Mount(context.Background(), url.Values{}))
	assert.True(t, ctrl.Empty())
	assert.Equal(t, 0, ctrl.TotalPages())
}

func TestControllerFetchErrorKeepsLastResults(t *testing.T) {
	api := &fakeFetcher{page: &models.PropertyPage{
		Items: []models.Property{{Title: "Villa"}},
		Total: 1,
	}}
	ctrl := NewController(api, nil, nil, nil)
	defer ctrl.Close()
	ctx := context.Background()

	require.NoError(t, ctrl.Mount(ctx, url.Values{}))
	require.Len(t, ctrl.Items(), 1)

	api.mu.Lock()
	api.err = context.DeadlineExceeded
	api.mu.Unlock()

	require.Error(t, ctrl.SearchNow(ctx))
	assert.Len(t, ctrl.Items(), 1, "failed fetch leaves the shown results alone")
	assert.Equal(t, 1, ctrl.Total())
}
