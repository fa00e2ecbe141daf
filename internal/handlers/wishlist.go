package handlers

import (
	"net/http"
	"time"

	"nestview-web/internal/middleware"
	"nestview-web/internal/wishlist"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/cache"

	"github.com/gin-gonic/gin"
)

// WishlistHandler serves the wishlist page and the save/unsave toggle.
// Controllers are keyed by user id, not visitor id: the wishlist belongs
// to the account.
type WishlistHandler struct {
	api         *backend.Client
	cached      *cache.Keyed
	controllers *registry[*wishlist.Controller]
}

func NewWishlistHandler(api *backend.Client, cached *cache.Keyed) *WishlistHandler {
	h := &WishlistHandler{
		api:         api,
		cached:      cached,
		controllers: newRegistry[*wishlist.Controller](time.Hour, nil),
	}
	go h.controllers.Cleanup()
	return h
}

func (h *WishlistHandler) controller(c *gin.Context) *wishlist.Controller {
	sess := middleware.CurrentSession(c)
	ctrl, ok := h.controllers.get(sess.User.ID)
	if !ok {
		ctrl = wishlist.NewController(h.api, h.cached, sess.User.ID)
		h.controllers.put(sess.User.ID, ctrl)
	}
	return ctrl
}

// List fetches the full wishlist and rebuilds the index. Requires a
// session; the route is guarded by RequireSession.
func (h *WishlistHandler) List(c *gin.Context) {
	ctrl := h.controller(c)
	if err := ctrl.Load(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ctrl.Items(),
		"total":   ctrl.Total(),
	})
}

// Toggle saves or unsaves one property. A toggle for a property already
// in flight is rejected without a second request; other properties stay
// interactive.
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req struct {
		PropertyID string `json:"propertyId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctrl := h.controller(c)
	if !ctrl.Loaded() {
		if err := ctrl.Load(c.Request.Context()); err != nil {
			c.Error(err)
			return
		}
	}

	if err := ctrl.Toggle(c.Request.Context(), req.PropertyID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"wishlisted": ctrl.IsWishlisted(req.PropertyID),
		"total":      ctrl.Total(),
	})
}
