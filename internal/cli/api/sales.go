package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/suds-dev/suds/internal/models"
)

// CreateSale creates a sale from the current cart (checkout). The server
// empties the cart as part of the operation.
func (c *Client) CreateSale(ctx context.Context) (*models.Sale, error) {
	var sale models.Sale
	if err := c.do(ctx, http.MethodPost, "/api/sales", nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales returns sales visible to the current user: all sales for
// Admin/SuperUser, only the user's own otherwise. Scoping is server-side.
func (c *Client) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := c.do(ctx, http.MethodGet, "/api/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// UpdateSaleStatus moves a sale to a new fulfilment state. Admin only.
func (c *Client) UpdateSaleStatus(ctx context.Context, id int64, status models.SaleStatus) (*models.Sale, error) {
	body := struct {
		Status models.SaleStatus `json:"status"`
	}{Status: status}

	var sale models.Sale
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/sales/%d/status", id), body, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
