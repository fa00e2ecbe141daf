package handlers

import (
	"net/http"
	"time"

	"nestview-web/internal/recovery"
	"nestview-web/pkg/backend"

	"github.com/gin-gonic/gin"
)

// RecoveryHandler drives the three-step password-recovery flow. Each
// visitor gets one flow at a time; starting over replaces it.
type RecoveryHandler struct {
	api   *backend.Client
	flows *registry[*recovery.Flow]
}

func NewRecoveryHandler(api *backend.Client) *RecoveryHandler {
	h := &RecoveryHandler{
		api:   api,
		flows: newRegistry[*recovery.Flow](30*time.Minute, nil),
	}
	go h.flows.Cleanup()
	return h
}

type recoveryStateResponse struct {
	Success bool                        `json:"success"`
	Step    recovery.Step               `json:"step"`
	Email   string                      `json:"email"`
	Cells   [recovery.CodeLength]string `json:"cells"`
	Focus   int                         `json:"focus"`
	Loading bool                        `json:"loading"`
	Done    bool                        `json:"done"`
}

func (h *RecoveryHandler) state(flow *recovery.Flow) recoveryStateResponse {
	return recoveryStateResponse{
		Success: true,
		Step:    flow.Step(),
		Email:   flow.Email(),
		Cells:   flow.OTP().Cells(),
		Focus:   flow.OTP().Focus(),
		Loading: flow.Loading(),
		Done:    flow.Done(),
	}
}

func (h *RecoveryHandler) flow(c *gin.Context) (*recovery.Flow, bool) {
	flow, ok := h.flows.get(visitorID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no recovery in progress"})
		return nil, false
	}
	return flow, true
}

// Start begins (or restarts) a flow and submits the email step.
func (h *RecoveryHandler) Start(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	flow := recovery.NewFlow(h.api)
	if err := flow.SubmitEmail(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	h.flows.put(visitorID(c), flow)
	c.JSON(http.StatusOK, h.state(flow))
}

// State returns the current flow state.
func (h *RecoveryHandler) State(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.state(flow))
}

// Key applies one keystroke to the code cells: a digit fills the cell and
// advances focus, Backspace clears or steps back.
func (h *RecoveryHandler) Key(c *gin.Context) {
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

// Paste applies a pasted string to the code cells; anything but exactly
// six digits is ignored.
func (h *RecoveryHandler) Paste(c *gin.Context) {
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

// SubmitOTP advances to the reset step when all six cells are filled.
func (h *RecoveryHandler) SubmitOTP(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if err := flow.SubmitOTP(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.state(flow))
}

// Resend reissues the code and clears the cells.
func (h *RecoveryHandler) Resend(c *gin.Context) {
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

// Reset submits the new password. On success the flow is discarded and
// the client redirects to login.
func (h *RecoveryHandler) Reset(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := flow.SubmitReset(c.Request.Context(), req.Password, req.Confirm); err != nil {
		c.Error(err)
		return
	}
	h.flows.delete(visitorID(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "done": true, "redirect": "/login"})
}

// applyKey routes a named key to the matching cell operation.
func applyKey(otp *recovery.OTPInput, cell int, key string) {
	if key == "Backspace" {
		otp.Backspace(cell)
		return
	}
	if len(key) == 1 {
		otp.TypeDigit(cell, rune(key[0]))
	}
}
