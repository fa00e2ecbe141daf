package middleware

import (
	"net/http"

	"nestview-web/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by the session middleware.
const (
	CtxSession   = "session"
	CtxSessionID = "session_id"
)

// SessionMiddleware resolves the session cookie on every request and, when
// valid, stores the session in the context. Anonymous requests pass
// through with nothing set.
func SessionMiddleware(gw session.Gateway, codec *session.CookieCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}
		id, err := codec.Decode(cookie)
		if err != nil {
			c.Next()
			return
		}
		sess, err := gw.Current(c.Request.Context(), id)
		if err != nil || sess == nil {
			c.Next()
			return
		}
		c.Set(CtxSession, sess)
		c.Set(CtxSessionID, id)
		c.Request = c.Request.WithContext(session.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

// RequireSession aborts anonymous requests. Must run after
// SessionMiddleware.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxSession); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests whose session user is not an admin. Must
// run after RequireSession; the backend enforces the role again.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || sess.User.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the request's session, nil when anonymous.
func CurrentSession(c *gin.Context) *session.Session {
	v, exists := c.Get(CtxSession)
	if !exists {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
