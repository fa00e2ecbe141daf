package backend

import (
	"context"
	"net/http"
	"time"
)

// TokenSource supplies the bearer token for authenticated requests. The
// token is read fresh on every outgoing request so a session refresh is
// picked up immediately; an empty string means anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func(ctx context.Context) string

func (f TokenSourceFunc) Token(ctx context.Context) string { return f(ctx) }

// AnonymousTokens is a TokenSource that never attaches a token.
var AnonymousTokens = TokenSourceFunc(func(ctx context.Context) string { return "" })

// Client talks to the marketplace backend API. All business logic lives
// behind it; the client only normalizes the wire envelope.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = AnonymousTokens
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
