package session

import (
	"context"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/cache"

	"github.com/google/uuid"
)

// Store persists sessions keyed by their cookie id.
type Store struct {
	store cache.Store
	ttl   time.Duration
}

func NewStore(store cache.Store, ttl time.Duration) *Store {
	return &Store{store: store, ttl: ttl}
}

// Create issues a fresh session id and persists the session.
func (s *Store) Create(ctx context.Context, user models.User, token string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.store.Set(ctx, cache.SessionKey(sess.ID), sess, s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

// Find returns the session for an id, nil when unknown or expired.
func (s *Store) Find(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.store.Get(ctx, cache.SessionKey(id), &sess)
	if err == cache.ErrCacheMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.store.Delete(ctx, cache.SessionKey(id))
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, cache.SessionKey(id))
}
