package api

import (
	"context"
	"net/http"

	"github.com/suds-dev/suds/internal/models"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and registration.
type AuthResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Login authenticates the user and returns a bearer token with the profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. A successful registration returns a token,
// so the caller is authenticated immediately.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", RegisterRequest{Username: username, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword requests a password reset email. The server acknowledges
// regardless of whether the address exists, to avoid account enumeration.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, nil)
}

// Me returns the profile for the currently stored token.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
