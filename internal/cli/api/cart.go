package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/suds-dev/suds/internal/models"
)

type cartItemRequest struct {
	ProductID int64 `json:"product_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

// GetCart returns the current user's cart.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds a product to the cart and returns the updated cart.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/api/cart/items", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem changes the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartItemRequest{Quantity: quantity}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", itemID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem removes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", itemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}
