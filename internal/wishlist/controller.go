// Package wishlist reconciles a fetched wishlist with optimistic toggle
// actions. The local index is never the source of truth: a refetch always
// wins, and failed toggles leave state exactly as it was (surfaced, not
// rolled back; there is nothing to roll back).
package wishlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/cache"
)

// ErrToggleInFlight rejects a second toggle for a property whose first
// toggle has not finished. Other properties stay independent.
var ErrToggleInFlight = errors.New("wishlist: toggle already in flight for this property")

// fetchTTL bounds how long a fetched wishlist may serve from cache.
const fetchTTL = 5 * time.Minute

// Backend is the slice of the marketplace client the controller needs.
type Backend interface {
	FetchWishlist(ctx context.Context) ([]models.WishlistItem, error)
	AddWishlistEntry(ctx context.Context, propertyID string) (string, error)
	RemoveWishlistEntry(ctx context.Context, entryID string) error
}

// Controller is one signed-in user's wishlist state.
type Controller struct {
	api      Backend
	cached   *cache.Keyed // nil disables the fetch cache
	cacheKey string

	mu       sync.Mutex
	index    map[string]string // property id -> wishlist entry id
	items    []models.WishlistItem
	inflight map[string]bool
	total    int
	loaded   bool
}

// NewController builds a controller for a user. Construct only when an
// authenticated session exists; the wishlist is meaningless without one.
func NewController(api Backend, cached *cache.Keyed, userID string) *Controller {
	return &Controller{
		api:      api,
		cached:   cached,
		cacheKey: cache.WishlistKey(userID),
		index:    make(map[string]string),
		inflight: make(map[string]bool),
	}
}

// Load fetches the full wishlist and rebuilds the index from scratch,
// discarding any optimistic drift.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]string, len(items))
	for _, item := range items {
		index[item.PropertyID] = item.ID
	}

	c.mu.Lock()
	c.index = index
	c.items = items
	c.total = len(items)
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Items returns a snapshot of the last reconciled wishlist, including any
// optimistic changes since the last Load.
func (c *Controller) Items() []models.WishlistItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.WishlistItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller) fetch(ctx context.Context) ([]models.WishlistItem, error) {
	if c.cached != nil {
		var items []models.WishlistItem
		if ok, err := c.cached.Get(ctx, c.cacheKey, &items); err == nil && ok {
			return items, nil
		}
	}
	items, err := c.api.FetchWishlist(ctx)
	if err != nil {
		return nil, err
	}
	if c.cached != nil {
		_ = c.cached.SetFromServer(ctx, c.cacheKey, items, fetchTTL)
	}
	return items, nil
}

// IsWishlisted answers in O(1) from the index.
func (c *Controller) IsWishlisted(propertyID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[propertyID]
	return ok
}

// Total returns the displayed wishlist count.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Toggle adds or removes a property. The entry is mutated locally only on
// success; a failure leaves the index untouched and the error carries the
// message to surface. A toggle for a property already in flight returns
// ErrToggleInFlight without issuing a request.
func (c *Controller) Toggle(ctx context.Context, propertyID string) error {
	c.mu.Lock()
	if c.inflight[propertyID] {
		c.mu.Unlock()
		return ErrToggleInFlight
	}
	c.inflight[propertyID] = true
	entryID, wishlisted := c.index[propertyID]
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, propertyID)
		c.mu.Unlock()
	}()

	if wishlisted {
		if err := c.api.RemoveWishlistEntry(ctx, entryID); err != nil {
			return err
		}
		c.mu.Lock()
		delete(c.index, propertyID)
		for i, item := range c.items {
			if item.PropertyID == propertyID {
				c.items = append(c.items[:i], c.items[i+1:]...)
				break
			}
		}
		c.total--
		c.mu.Unlock()
	} else {
		newEntryID, err := c.api.AddWishlistEntry(ctx, propertyID)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.index[propertyID] = newEntryID
		c.items = append(c.items, models.WishlistItem{ID: newEntryID, PropertyID: propertyID})
		c.total++
		c.mu.Unlock()
	}

	// Drop the cached fetch so the next Load reconciles any drift the
	// optimistic update introduced.
	if c.cached != nil {
		_ = c.cached.Invalidate(ctx, c.cacheKey)
	}
	return nil
}
