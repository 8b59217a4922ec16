package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/suds-dev/suds/internal/models"
)

// UserUpdate is the payload for modifying an account. Zero values are
// omitted so partial updates are possible.
type UserUpdate struct {
	Username string      `json:"username,omitempty"`
	Email    string      `json:"email,omitempty"`
	Role     models.Role `json:"role,omitempty"`
}

// ListUsers returns all accounts. SuperUser only (enforced server-side).
func (c *Client) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser modifies an account. SuperUser only.
func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. SuperUser only.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}
