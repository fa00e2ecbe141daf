package handlers

import (
	"net/http"
	"time"

	"nestview-web/internal/recovery"
	"nestview-web/internal/validators"
	"nestview-web/pkg/backend"

	"github.com/gin-gonic/gin"
)

// VerifyHandler drives post-registration email verification: the same
// six-cell code input plus a countdown-gated resend.
type VerifyHandler struct {
	api   *backend.Client
	flows *registry[*recovery.VerifyFlow]
}

func NewVerifyHandler(api *backend.Client) *VerifyHandler {
	h := &VerifyHandler{
		api: api,
		// Evicted flows must stop their countdown tickers.
		flows: newRegistry[*recovery.VerifyFlow](30*time.Minute, func(flow *recovery.VerifyFlow) {
			flow.Close()
		}),
	}
	go h.flows.Cleanup()
	return h
}

type verifyStateResponse struct {
	Success         bool                        `json:"success"`
	Email           string                      `json:"email"`
	Cells           [recovery.CodeLength]string `json:"cells"`
	Focus           int                         `json:"focus"`
	ResendRemaining int                         `json:"resend_remaining"`
	CanResend       bool                        `json:"can_resend"`
	Done            bool                        `json:"done"`
}

func (h *VerifyHandler) state(flow *recovery.VerifyFlow) verifyStateResponse {
	return verifyStateResponse{
		Success:         true,
		Email:           flow.Email(),
		Cells:           flow.OTP().Cells(),
		Focus:           flow.OTP().Focus(),
		ResendRemaining: flow.ResendRemaining(),
		CanResend:       flow.CanResend(),
		Done:            flow.Done(),
	}
}

func (h *VerifyHandler) flow(c *gin.Context) (*recovery.VerifyFlow, bool) {
	flow, ok := h.flows.get(visitorID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no verification in progress"})
		return nil, false
	}
	return flow, true
}

// Start opens a verification flow for the address that just registered.
// The resend cooldown starts immediately, covering the code sent at
// registration.
func (h *VerifyHandler) Start(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validators.ValidateEmail(req.Email); err != nil {
		c.Error(err)
		return
	}

	flow := recovery.NewVerifyFlow(h.api, req.Email, 0)
	h.flows.put(visitorID(c), flow)
	c.JSON(http.StatusOK, h.state(flow))
}

func (h *VerifyHandler) State(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.state(flow))
}

func (h *VerifyHandler) Key(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	var req struct {
		Cell int    `json:"cell"`
		Key  string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	applyKey(flow.OTP(), req.Cell, req.Key)
	c.JSON(http.StatusOK, h.state(flow))
}

func (h *VerifyHandler) Paste(c *gin.Context) {
	flow, ok := h.flow(c)
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

	flow.OTP().Paste(req.Text)
	c.JSON(http.StatusOK, h.state(flow))
}

// Submit verifies the code with the backend; success redirects to login.
func (h *VerifyHandler) Submit(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if err := flow.Submit(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	h.flows.delete(visitorID(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "done": true, "redirect": "/login"})
}

// Resend reissues the registration code once the cooldown allows it.
func (h *VerifyHandler) Resend(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if err := flow.Resend(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.state(flow))
}
