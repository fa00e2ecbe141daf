package handlers

import (
	"net/http"

	"nestview-web/internal/middleware"
	"nestview-web/internal/models"
	"nestview-web/internal/session"
	"nestview-web/internal/validators"
	"nestview-web/pkg/backend"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 24 * 60 * 60

// AccountHandler wires sign-in/out and profile actions. Authentication
// itself lives with the external identity provider; this handler only
// consumes the gateway contract and manages the cookie.
type AccountHandler struct {
	api      *backend.Client
	gateway  session.Gateway
	provider *session.Provider
	codec    *session.CookieCodec
}

func NewAccountHandler(api *backend.Client, gateway session.Gateway, provider *session.Provider, codec *session.CookieCodec) *AccountHandler {
	return &AccountHandler{api: api, gateway: gateway, provider: provider, codec: codec}
}

// Login exchanges credentials for a session and sets the signed cookie.
func (h *AccountHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	sess, err := h.gateway.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetCookie(session.CookieName, h.codec.Encode(sess.ID), sessionCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.User})
}

// Logout drops the session and clears the cookie.
func (h *AccountHandler) Logout(c *gin.Context) {
	if id, exists := c.Get(middleware.CtxSessionID); exists {
		if err := h.gateway.SignOut(c.Request.Context(), id.(string)); err != nil {
			c.Error(err)
			return
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register creates an account with the identity provider. The account
// stays unverified until the emailed code is confirmed via the verify
// flow.
func (h *AccountHandler) Register(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validators.ValidateEmail(req.Email); err != nil {
		c.Error(err)
		return
	}
	if err := validators.ValidateNewPassword(req.Password, req.Password); err != nil {
		c.Error(err)
		return
	}
	if err := validators.ValidatePhone(req.Phone); err != nil {
		c.Error(err)
		return
	}

	if err := h.provider.Register(c.Request.Context(), req.FullName, req.Email, req.Phone, req.Password); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "account created, check your email for the verification code"})
}

// Me returns the signed-in user.
func (h *AccountHandler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.User})
}

// UpdateProfile validates and forwards a profile change.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var form models.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validators.ValidateProfileForm(&form); err != nil {
		c.Error(err)
		return
	}
	if err := h.api.UpdateProfile(c.Request.Context(), &form); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Contact validates and forwards a contact-form submission.
func (h *AccountHandler) Contact(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validators.ValidateContactForm(&form); err != nil {
		c.Error(err)
		return
	}
	if err := h.api.SendContactMessage(c.Request.Context(), &form); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "thanks, we'll be in touch"})
}

// Subscribe signs an address up for the newsletter.
func (h *AccountHandler) Subscribe(c *gin.Context) {
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
	if err := h.api.SubscribeNewsletter(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "subscribed"})
}
