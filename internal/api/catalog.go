package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"bosko-storefront/internal/domain"
)

// Products lists the public catalog, optionally filtered by category.
func (c *Client) Products(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	var q url.Values
	if categoryID != nil {
		q = url.Values{"categoryId": {strconv.FormatInt(*categoryID, 10)}}
	}
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*domain.Category, error) {
	var out domain.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
