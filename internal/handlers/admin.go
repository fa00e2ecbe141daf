package handlers

import (
	"net/http"

	"nestview-web/pkg/backend"

	"github.com/gin-gonic/gin"
)

// AdminHandler is a thin passthrough for moderation and newsletter
// actions. All rules (who may approve, what approval does) live on the
// backend; the gateway only relays and surfaces messages.
type AdminHandler struct {
	api *backend.Client
}

func NewAdminHandler(api *backend.Client) *AdminHandler {
	return &AdminHandler{api: api}
}

// Pending lists listings awaiting moderation.
func (h *AdminHandler) Pending(c *gin.Context) {
	items, err := h.api.ListPendingProperties(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// Approve marks a pending listing approved.
func (h *AdminHandler) Approve(c *gin.Context) {
	if err := h.api.ApproveProperty(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reject rejects a pending listing with a reason.
func (h *AdminHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := h.api.RejectProperty(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendNewsletter asks the backend to dispatch a newsletter.
func (h *AdminHandler) SendNewsletter(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := h.api.SendNewsletter(c.Request.Context(), req.Subject, req.Body); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "newsletter queued"})
}
