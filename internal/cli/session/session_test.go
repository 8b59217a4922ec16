package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/auth"
)

// mockTokenStore is a simple in-memory token store for testing
type mockTokenStore struct {
	tokens map[string]string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]string)}
}

func (m *mockTokenStore) SaveToken(serverURL, token string) error {
	m.tokens[serverURL] = token
	return nil
}

func (m *mockTokenStore) LoadToken(serverURL string) (string, error) {
	token, exists := m.tokens[serverURL]
	if !exists {
		return "", auth.ErrNoToken
	}
	return token, nil
}

func (m *mockTokenStore) DeleteToken(serverURL string) error {
	delete(m.tokens, serverURL)
	return nil
}

func (m *mockTokenStore) hasToken(serverURL string) bool {
	_, ok := m.tokens[serverURL]
	return ok
}

// newTestStore wires a session store against a mock API server.
func newTestStore(t *testing.T, handler http.Handler) (*Store, *mockTokenStore, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := newMockTokenStore()
	client := api.New(server.URL, tokens)
	return NewStore(client, tokens, server.URL), tokens, server
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func authSuccessHandler(token string, user map[string]any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login", "/api/auth/register":
			writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
		case "/api/auth/me":
			writeJSON(w, http.StatusOK, user)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestLoginThenLogout(t *testing.T) {
	user := map[string]any{"id": 7, "username": "maria", "email": "maria@example.com", "role": "User"}
	sess, tokens, server := newTestStore(t, authSuccessHandler("tok-123", user))

	err := sess.Login(context.Background(), "maria@example.com", "secretpw")
	require.NoError(t, err)

	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "maria", sess.User().Username)
	assert.Equal(t, "tok-123", tokens.tokens[server.URL])

	sess.Logout()

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.False(t, tokens.hasToken(server.URL))
}

func TestLogoutIsIdempotent(t *testing.T) {
	user := map[string]any{"id": 7, "username": "maria", "email": "maria@example.com", "role": "User"}
	sess, tokens, server := newTestStore(t, authSuccessHandler("tok-123", user))

	require.NoError(t, sess.Login(context.Background(), "maria@example.com", "secretpw"))

	sess.Logout()
	sess.Logout()

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.False(t, tokens.hasToken(server.URL))
}

func TestInitializeWithoutTokenSkipsNetwork(t *testing.T) {
	requests := 0
	sess, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))

	assert.True(t, sess.Loading())

	sess.Initialize(context.Background())

	assert.Equal(t, 0, requests, "initialize without a token must not hit the network")
	assert.False(t, sess.Loading())
	assert.False(t, sess.IsAuthenticated())
}

func TestInitializeWithValidToken(t *testing.T) {
	user := map[string]any{"id": 3, "username": "admin", "email": "admin@example.com", "role": "Admin"}
	sess, tokens, server := newTestStore(t, authSuccessHandler("tok-abc", user))
	tokens.tokens[server.URL] = "tok-abc"

	sess.Initialize(context.Background())

	assert.False(t, sess.Loading())
	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "admin", sess.User().Username)
	assert.True(t, sess.IsAdmin())
	assert.False(t, sess.IsSuperUser())
}

func TestInitializeWithExpiredToken(t *testing.T) {
	sess, tokens, server := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	}))
	tokens.tokens[server.URL] = "stale-token"

	sess.Initialize(context.Background())

	assert.False(t, sess.Loading())
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, tokens.hasToken(server.URL), "expired token must be deleted")
}

func TestInitializeWithUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	tokens := newMockTokenStore()
	tokens.tokens[server.URL] = "some-token"
	client := api.New(server.URL, tokens)
	sess := NewStore(client, tokens, server.URL)

	sess.Initialize(context.Background())

	assert.False(t, sess.Loading())
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, tokens.hasToken(server.URL))
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	user := map[string]any{"id": 7, "username": "maria", "email": "maria@example.com", "role": "User"}
	authed := true
	sess, tokens, server := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": user})
			return
		}
		if !authed {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token revoked"})
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	}))

	require.NoError(t, sess.Login(context.Background(), "maria@example.com", "secretpw"))
	require.True(t, sess.IsAuthenticated())

	// The server-side session dies; the next request, whatever it is, comes
	// back 401 and must flip the client to anonymous.
	authed = false
	_, err := sessClient(sess).ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.False(t, tokens.hasToken(server.URL))
}

// sessClient exposes the store's API client for round-trip tests.
func sessClient(s *Store) *api.Client {
	return s.api
}

func TestLoginInvalidCredentialsSurfacesServerMessage(t *testing.T) {
	sess, tokens, server := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	}))

	err := sess.Login(context.Background(), "user@example.com", "wrongpass")

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, tokens.hasToken(server.URL))
}

func TestLoginConnectionErrorSurfacesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	tokens := newMockTokenStore()
	client := api.New(server.URL, tokens)
	sess := NewStore(client, tokens, server.URL)

	err := sess.Login(context.Background(), "user@example.com", "somepass")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not connect to the server")
	assert.False(t, sess.IsAuthenticated())
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	requests := 0
	sess, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	err := sess.Login(context.Background(), "not-an-email", "pw")
	require.Error(t, err)

	err = sess.Login(context.Background(), "user@example.com", "")
	require.Error(t, err)

	assert.Equal(t, 0, requests, "invalid input must never be sent to the server")
}

func TestRegisterAutoAuthenticates(t *testing.T) {
	user := map[string]any{"id": 1, "username": "alice", "email": "alice@example.com", "role": "User"}
	sess, tokens, server := newTestStore(t, authSuccessHandler("abc", user))

	err := sess.Register(context.Background(), "alice", "alice@example.com", "Str0ng!pw")
	require.NoError(t, err)

	assert.True(t, sess.IsAuthenticated())
	assert.False(t, sess.IsAdmin())
	assert.Equal(t, "abc", tokens.tokens[server.URL])
}

func TestLoginWhileAuthenticatedReplacesSession(t *testing.T) {
	calls := 0
	sess, tokens, server := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		user := map[string]any{"id": calls, "username": "user", "email": "user@example.com", "role": "User"}
		token := "tok-1"
		if calls > 1 {
			user["username"] = "other"
			token = "tok-2"
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
	}))

	require.NoError(t, sess.Login(context.Background(), "user@example.com", "pw-one"))
	require.NoError(t, sess.Login(context.Background(), "other@example.com", "pw-two"))

	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "other", sess.User().Username)
	assert.Equal(t, "tok-2", tokens.tokens[server.URL])
}
