package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			fmt.Fprintf(w, `{"success":true,"data":{"user":{"_id":"u1","email":"jamie@example.com"},"token":"%s"}}`, token)
		case "/auth/register":
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGatewaySignInCreatesSession(t *testing.T) {
	token := signedTokenForGateway(t, time.Now().Add(time.Hour))
	srv := identityServer(t, token)
	defer srv.Close()

	store := NewStore(cache.NewMemoryStore(), time.Hour)
	gw := NewGateway(NewProvider(srv.URL), store)
	ctx := context.Background()

	sess, err := gw.SignIn(ctx, "jamie@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, token, sess.Token)

	current, err := gw.Current(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.User.ID)
	assert.Equal(t, token, gw.Token(ctx, sess.ID))
}

func TestGatewayRejectedSignInSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	gw := NewGateway(NewProvider(srv.URL), NewStore(cache.NewMemoryStore(), time.Hour))

	_, err := gw.SignIn(context.Background(), "jamie@example.com", "wrong")
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestGatewayDropsSessionWithExpiredToken(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	gw := NewGateway(nil, store)
	ctx := context.Background()

	dead := signedTokenForGateway(t, time.Now().Add(-time.Hour))
	sess, err := store.Create(ctx, models.User{ID: "u1"}, dead)
	require.NoError(t, err)

	current, err := gw.Current(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Equal(t, "", gw.Token(ctx, sess.ID))

	// the dead session was deleted, not just hidden
	found, err := store.Find(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGatewaySignOut(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	gw := NewGateway(nil, store)
	ctx := context.Background()

	live := signedTokenForGateway(t, time.Now().Add(time.Hour))
	sess, err := store.Create(ctx, models.User{ID: "u1"}, live)
	require.NoError(t, err)

	require.NoError(t, gw.SignOut(ctx, sess.ID))
	current, err := gw.Current(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, current)

	// anonymous ids are a no-op
	require.NoError(t, gw.SignOut(ctx, ""))
}

func signedTokenForGateway(t *testing.T, exp time.Time) string {
	return signedToken(t, map[string]interface{}{"exp": exp.Unix(), "sub": "u1"})
}
