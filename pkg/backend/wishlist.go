package backend

import (
	"context"
	"net/http"

	"nestview-web/internal/models"
)

// FetchWishlist returns the caller's full wishlist. Requires a session
// token on the client's token source.
func (c *Client) FetchWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	env, err := c.do(ctx, "fetch_wishlist", http.MethodGet, "/api/wishlist", nil, nil)
	if err != nil {
		return nil, err
	}
	var items []models.WishlistItem
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistEntry saves a property and returns the server-issued entry
// id, which is what a later delete call needs.
func (c *Client) AddWishlistEntry(ctx context.Context, propertyID string) (string, error) {
	env, err := c.do(ctx, "add_wishlist_entry", http.MethodPost, "/api/wishlist", nil, map[string]string{
		"propertyId": propertyID,
	})
	if err != nil {
		return "", err
	}
	var entry models.WishlistItem
	if err := decodeData(env, &entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// RemoveWishlistEntry deletes a saved-property record by its entry id.
func (c *Client) RemoveWishlistEntry(ctx context.Context, entryID string) error {
	_, err := c.do(ctx, "remove_wishlist_entry", http.MethodDelete, "/api/wishlist/"+entryID, nil, nil)
	return err
}
