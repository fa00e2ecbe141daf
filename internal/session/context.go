package session

import "context"

type tokenContextKey struct{}

// WithToken stores the session's bearer token on a request context. The
// backend client reads it fresh on every outgoing request, so a refreshed
// session is never served a stale token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the request's bearer token, empty when
// anonymous.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}
