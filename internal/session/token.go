package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a provider-issued JWT is past its exp
// claim. The signature is not verified here; the provider is the trusted
// issuer and the backend re-validates every request. We only need expiry
// to avoid sending dead tokens upstream.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// An unparseable token is treated as expired.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// No exp claim: trust the provider, let the backend decide.
		return false
	}
	return time.Now().After(exp.Time)
}
