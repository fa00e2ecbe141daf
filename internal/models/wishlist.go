package models

// WishlistItem is a saved-property record. Its ID is distinct from the
// property's own ID and is what the delete call requires.
type WishlistItem struct {
	ID         string    `json:"_id"`
	PropertyID string    `json:"propertyId"`
	Property   *Property `json:"property,omitempty"`
}
