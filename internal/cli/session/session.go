package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/auth"
	"github.com/suds-dev/suds/internal/cli/validate"
	"github.com/suds-dev/suds/internal/models"
)

// Store is the single source of truth for "who is the current user and are
// they logged in". The profile is nil exactly when the session is anonymous,
// and the persisted token is deleted on every path that clears the profile,
// so storage and memory never disagree.
//
// State machine: Unknown(loading) -> {Authenticated, Anonymous}.
// Authenticated -> Anonymous via Logout or a 401 from any request.
// Anonymous -> Authenticated via a successful Login or Register; either of
// those while already authenticated simply replaces the session.
type Store struct {
	api       *api.Client
	tokens    auth.TokenStore
	serverURL string

	mu            sync.RWMutex
	user          *models.UserProfile
	authenticated bool
	loading       bool
}

// NewStore creates a session store bound to the given API client. The store
// registers its invalidate operation as the client's 401 handler so that an
// authentication failure on any request clears token and memory together.
func NewStore(client *api.Client, tokens auth.TokenStore, serverURL string) *Store {
	s := &Store{
		api:       client,
		tokens:    tokens,
		serverURL: serverURL,
		loading:   true,
	}
	client.OnUnauthorized(s.Invalidate)
	return s
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type forgotPasswordInput struct {
	Email string `validate:"required,email"`
}

// Initialize validates any persisted token against the server and populates
// the session from the result. Without a token it makes no network call.
// On any failure the token is deleted and the session stays anonymous;
// Initialize itself never fails. Loading reports false once this returns.
func (s *Store) Initialize(ctx context.Context) {
	defer s.finishLoading()

	token, err := s.tokens.LoadToken(s.serverURL)
	if err != nil || token == "" {
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		// Expired token, revoked account or unreachable server: either way
		// the persisted token can no longer be trusted.
		log.Debug().Err(err).Msg("session check failed, clearing stored token")
		s.Invalidate()
		return
	}

	s.setAuthenticated(user)
}

// Login authenticates against the server and persists the returned token.
// Input is validated before any network call. On failure the session is
// left anonymous and the returned error carries the server's message, or a
// generic connectivity message when no response was received. No retry.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return err
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return errors.New(api.ErrorMessage(err))
	}

	return s.establish(resp)
}

// Register creates an account and authenticates with the returned token,
// under the same contract as Login.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	if err := validate.Struct(registerInput{Username: username, Email: email, Password: password}); err != nil {
		return err
	}

	resp, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return errors.New(api.ErrorMessage(err))
	}

	return s.establish(resp)
}

// ForgotPassword asks the server to send a reset email. The acknowledgement
// is generic whether or not the account exists.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Struct(forgotPasswordInput{Email: email}); err != nil {
		return err
	}

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return errors.New(api.ErrorMessage(err))
	}
	return nil
}

// Logout clears the session. Synchronous, no network call, idempotent.
func (s *Store) Logout() {
	s.Invalidate()
}

// Invalidate deletes the persisted token and clears the in-memory session
// in one operation. Both Logout and the API client's 401 handler go through
// here, so token presence and IsAuthenticated never silently diverge.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.DeleteToken(s.serverURL); err != nil {
		log.Warn().Err(err).Msg("failed to delete stored token")
	}
	s.user = nil
	s.authenticated = false
}

// establish persists the token and swaps in the new identity. The token is
// written first: if persisting fails the session stays anonymous rather
// than holding an identity the next process could not re-derive.
func (s *Store) establish(resp *api.AuthResponse) error {
	if err := s.tokens.SaveToken(s.serverURL, resp.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}
	user := resp.User
	s.setAuthenticated(&user)
	return nil
}

func (s *Store) setAuthenticated(user *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = true
}

func (s *Store) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Loading reports whether the initial session check is still in progress.
// Consumers must not make authorization decisions while it is true.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether a user is currently logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns the current profile, or nil when anonymous.
func (s *Store) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAdmin reports whether the current user holds Admin privileges.
// SuperUser passes every Admin check. All authorization decisions call this
// predicate (or IsSuperUser) instead of comparing role strings.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.user.Role.IsAdmin()
}

// IsSuperUser reports whether the current user holds the top privilege level.
func (s *Store) IsSuperUser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.user.Role.IsSuperUser()
}
