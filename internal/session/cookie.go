package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// CookieName is the session cookie set on sign-in.
const CookieName = "nv_session"

var errBadCookie = errors.New("session: malformed or tampered cookie")

// CookieCodec signs session ids so a forged cookie cannot address another
// visitor's session. The MAC key is derived once from the configured
// secret.
type CookieCodec struct {
	key []byte
}

func NewCookieCodec(secret string) *CookieCodec {
	key := pbkdf2.Key([]byte(secret), []byte("nestview-session-cookie"), 4096, 32, sha256.New)
	return &CookieCodec{key: key}
}

// Encode returns "id.signature" for the cookie value.
func (c *CookieCodec) Encode(sessionID string) string {
	return sessionID + "." + c.sign(sessionID)
}

// Decode verifies the signature and returns the session id.
func (c *CookieCodec) Decode(value string) (string, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", errBadCookie
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", errBadCookie
	}
	return id, nil
}

func (c *CookieCodec) sign(id string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
