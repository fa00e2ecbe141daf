// Package session wires the external identity provider into the rest of
// the app. Nothing here implements authentication; the provider owns
// credentials and token issuance, this package only consumes its contract
// and keeps the resulting session reachable by cookie id.
package session

import (
	"context"
	"time"

	"nestview-web/internal/models"
)

// Session is the authenticated state for one visitor.
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Gateway is the session/identity surface the rest of the app depends on.
type Gateway interface {
	// Current returns the session for a cookie id, or nil when signed out
	// or expired.
	Current(ctx context.Context, sessionID string) (*Session, error)
	// Token returns the bearer token for a session id, empty when none.
	// Callers read it fresh per request; tokens are never cached locally.
	Token(ctx context.Context, sessionID string) string
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
}

type gateway struct {
	provider *Provider
	store    *Store
}

// NewGateway builds the default gateway over the identity provider and
// the session store.
func NewGateway(provider *Provider, store *Store) Gateway {
	return &gateway{provider: provider, store: store}
}

func (g *gateway) Current(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	sess, err := g.store.Find(ctx, sessionID)
	if err != nil || sess == nil {
		return nil, err
	}
	if tokenExpired(sess.Token) {
		// Expired token means the session is dead; drop it.
		_ = g.store.Delete(ctx, sessionID)
		return nil, nil
	}
	return sess, nil
}

func (g *gateway) Token(ctx context.Context, sessionID string) string {
	sess, err := g.Current(ctx, sessionID)
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}

func (g *gateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	result, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sess, err := g.store.Create(ctx, result.User, result.Token)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (g *gateway) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return g.store.Delete(ctx, sessionID)
}
