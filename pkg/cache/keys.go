package cache

import "fmt"

// cache key for a signed-in visitor's session.
func SessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// cache key for a user's fetched wishlist.
func WishlistKey(userID string) string {
	return fmt.Sprintf("wishlist:%s", userID)
}

// cache key for a listings search result page, keyed by the serialized
// query string so identical searches share an entry.
func ListingsSearchKey(query string) string {
	return fmt.Sprintf("listings:search:%s", query)
}
