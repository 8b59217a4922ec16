package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/suds-dev/suds/internal/models"
)

// ProductInput is the create/update payload for a catalog entry. The
// validate tags are checked client-side before the request is sent.
type ProductInput struct {
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category" validate:"required"`
	Price       float64 `json:"price" yaml:"price" validate:"gt=0"`
	Stock       int     `json:"stock" yaml:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// ListProducts returns the full catalog. Search and category filtering are
// applied client-side over this list.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single catalog entry by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog entry. Admin only (enforced server-side).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalog entry. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalog entry. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}
