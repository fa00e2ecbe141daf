package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// visitorCookie identifies a browser across requests so per-visitor
// controller state (recovery flow, listings page) can be found again. It
// is not an auth credential.
const visitorCookie = "nv_visitor"

const visitorCookieMaxAge = 24 * 60 * 60

// visitorID returns the visitor id from the cookie, minting one when
// absent.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(visitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}
