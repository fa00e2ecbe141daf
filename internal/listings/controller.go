// Package listings keeps three things synchronized for the search page:
// the committed filter state, the address bar's query string, and the
// fetched result page. Free-text search is debounced; every other filter
// change refetches immediately.
package listings

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/cache"
	"nestview-web/pkg/logger"
)

// SearchDebounce is the quiescence window for free-text search input.
const SearchDebounce = 500 * time.Millisecond

// resultTTL bounds how long a fetched page may serve from cache.
const resultTTL = time.Minute

// Fetcher is the slice of the marketplace client the controller needs.
type Fetcher interface {
	ListProperties(ctx context.Context, params url.Values) (*models.PropertyPage, error)
}

// Controller is one visitor's listings page state.
type Controller struct {
	api      Fetcher
	pages    *cache.Keyed // nil disables result caching
	debounce *Debouncer
	onURL    func(url.Values)
	onError  func(error)

	mu      sync.Mutex
	filters FilterState
	page    int
	items   []models.Property
	total   int
	fetched bool
	seq     int
}

// NewController builds a controller. onURL receives the canonical query
// values whenever the address bar should change; onError receives fetch
// failures from debounced (asynchronous) fetches. Either may be nil.
func NewController(api Fetcher, pages *cache.Keyed, onURL func(url.Values), onError func(error)) *Controller {
	return &Controller{
		api:      api,
		pages:    pages,
		debounce: NewDebouncer(SearchDebounce),
		onURL:    onURL,
		onError:  onError,
		filters:  DefaultFilters(),
		page:     1,
	}
}

// Mount hydrates the filters from the URL once and runs the initial
// fetch, so a shared or bookmarked link reproduces the same result set.
// The URL is not re-read after this point.
func (c *Controller) Mount(ctx context.Context, query url.Values) error {
	c.mu.Lock()
	c.filters = ParseValues(query)
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// UpdateFilters commits a non-search filter change: immediate URL update
// and immediate refetch at page 1. The search text carries over from the
// current state; use SetSearch for it.
func (c *Controller) UpdateFilters(ctx context.Context, next FilterState) error {
	c.mu.Lock()
	next.Search = c.filters.Search
	c.filters = next
	c.mu.Unlock()

	c.pushURL()
	c.debounce.Cancel()
	return c.fetch(ctx, 1)
}

// SetSearch updates the free-text search. The URL changes immediately;
// the refetch is deferred by the debounce window, and typing again before
// it elapses restarts the window so only the final value is fetched.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	c.filters.Search = text
	c.mu.Unlock()

	c.pushURL()
	c.debounce.Schedule(func() {
		if err := c.fetch(context.Background(), 1); err != nil {
			logger.GlobalLogger.Errorf("Deferred search fetch failed: %v", err)
			if c.onError != nil {
				c.onError(err)
			}
		}
	})
}

// SearchNow bypasses the debounce: any pending deferred fetch is
// cancelled and the current state is fetched immediately at page 1.
func (c *Controller) SearchNow(ctx context.Context) error {
	c.debounce.Cancel()
	return c.fetch(ctx, 1)
}

// SetPage fetches a specific page with the current filters.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	return c.fetch(ctx, page)
}

// Close cancels any pending deferred fetch. Call on teardown.
func (c *Controller) Close() {
	c.debounce.Cancel()
}

func (c *Controller) pushURL() {
	if c.onURL == nil {
		return
	}
	c.mu.Lock()
	values := c.filters.Values()
	c.mu.Unlock()
	c.onURL(values)
}

// fetch runs the paginated query and commits the result unless a newer
// fetch has started in the meantime.
func (c *Controller) fetch(ctx context.Context, page int) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	params := c.filters.Values()
	c.mu.Unlock()

	params.Set("page", strconv.Itoa(page))

	result, err := c.lookup(ctx, params)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if seq == c.seq {
		c.items = result.Items
		c.total = result.Total
		c.page = page
		c.fetched = true
	}
	c.mu.Unlock()
	return nil
}

// lookup serves a page from the shared result cache when possible.
func (c *Controller) lookup(ctx context.Context, params url.Values) (*models.PropertyPage, error) {
	key := cache.ListingsSearchKey(params.Encode())
	if c.pages != nil {
		var cached models.PropertyPage
		if ok, err := c.pages.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	result, err := c.api.ListProperties(ctx, params)
	if err != nil {
		return nil, err
	}
	if c.pages != nil {
		if err := c.pages.SetFromServer(ctx, key, result, resultTTL); err != nil {
			logger.GlobalLogger.Errorf("Failed to cache listings page: %v", err)
		}
	}
	return result, nil
}

func (c *Controller) Filters() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// URLValues returns the canonical query string values for the current
// filters.
func (c *Controller) URLValues() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Values()
}

func (c *Controller) Items() []models.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages derives the page count from the fixed page size.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.total + PageSize - 1) / PageSize
}

func (c *Controller) CanPrev() bool {
	return c.Page() > 1
}

func (c *Controller) CanNext() bool {
	return c.Page() < c.TotalPages()
}

// Empty reports a completed fetch that returned no listings; the page
// shows a distinct empty-state message rather than an empty grid.
func (c *Controller) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetched && c.total == 0
}
