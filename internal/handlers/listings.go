package handlers

import (
	"net/http"
	"time"

	"nestview-web/internal/listings"
	"nestview-web/internal/models"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/cache"

	"github.com/gin-gonic/gin"
)

// ListingsHandler serves the search page. Each visitor holds one listings
// controller mirroring their page state; a GET remounts it from the URL.
type ListingsHandler struct {
	api         *backend.Client
	pages       *cache.Keyed
	controllers *registry[*listings.Controller]
}

func NewListingsHandler(api *backend.Client, pages *cache.Keyed) *ListingsHandler {
	h := &ListingsHandler{
		api:   api,
		pages: pages,
		controllers: newRegistry[*listings.Controller](time.Hour, func(ctrl *listings.Controller) {
			ctrl.Close()
		}),
	}
	go h.controllers.Cleanup()
	return h
}

type listingsStateResponse struct {
	Success    bool                 `json:"success"`
	Items      []models.Property    `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	CanPrev    bool                 `json:"can_prev"`
	CanNext    bool                 `json:"can_next"`
	Empty      bool                 `json:"empty"`
	Query      string               `json:"query"`
	Filters    listings.FilterState `json:"filters"`
}

func (h *ListingsHandler) state(ctrl *listings.Controller) listingsStateResponse {
	return listingsStateResponse{
		Success:    true,
		Items:      ctrl.Items(),
		Total:      ctrl.Total(),
		Page:       ctrl.Page(),
		TotalPages: ctrl.TotalPages(),
		CanPrev:    ctrl.CanPrev(),
		CanNext:    ctrl.CanNext(),
		Empty:      ctrl.Empty(),
		Query:      ctrl.URLValues().Encode(),
		Filters:    ctrl.Filters(),
	}
}

func (h *ListingsHandler) controller(c *gin.Context) (*listings.Controller, bool) {
	ctrl, ok := h.controllers.get(visitorID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "listings page not mounted"})
		return nil, false
	}
	return ctrl, true
}

// Mount hydrates a fresh controller from the request's query string (so a
// shared link reproduces the same result set) and runs the initial fetch.
func (h *ListingsHandler) Mount(c *gin.Context) {
	ctrl := listings.NewController(h.api, h.pages, nil, nil)
	if err := ctrl.Mount(c.Request.Context(), c.Request.URL.Query()); err != nil {
		ctrl.Close()
		c.Error(err)
		return
	}
	h.controllers.put(visitorID(c), ctrl)
	c.JSON(http.StatusOK, h.state(ctrl))
}

// UpdateFilters commits a non-search filter change: immediate refetch at
// page 1, canonical query string in the response for the address bar.
func (h *ListingsHandler) UpdateFilters(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var req struct {
		Type     string `json:"type"`
		MinPrice string `json:"min_price"`
		MaxPrice string `json:"max_price"`
		Beds     string `json:"beds"`
		Country  string `json:"country"`
		City     string `json:"city"`
		SortBy   string `json:"sort_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	next := listings.FilterState{
		Type:     req.Type,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Beds:     req.Beds,
		Country:  req.Country,
		City:     req.City,
		SortBy:   req.SortBy,
	}
	if next.Type == "" {
		next.Type = listings.SentinelType
	}
	if next.Beds == "" {
		next.Beds = listings.SentinelBeds
	}
	if next.SortBy == "" {
		next.SortBy = listings.SentinelSort
	}

	if err := ctrl.UpdateFilters(c.Request.Context(), next); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.state(ctrl))
}

// SearchInput records a keystroke in the free-text search box. The URL
// updates immediately; the refetch is debounced.
func (h *ListingsHandler) SearchInput(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctrl.SetSearch(req.Text)
	c.JSON(http.StatusOK, h.state(ctrl))
}

// Search is the manual search action: bypasses the debounce and fetches
// immediately at page 1.
func (h *ListingsHandler) Search(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.SearchNow(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.state(ctrl))
}

// Page fetches a specific result page with the current filters.
func (h *ListingsHandler) Page(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var req struct {
		Page int `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := ctrl.SetPage(c.Request.Context(), req.Page); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.state(ctrl))
}

// Detail proxies a single listing fetch.
func (h *ListingsHandler) Detail(c *gin.Context) {
	property, err := h.api.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": property})
}
