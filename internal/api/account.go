package api

import (
	"context"
	"fmt"
	"net/http"

	"bosko-storefront/internal/domain"
)

type ProfileUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, in ProfileUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, "/users/me", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Addresses(ctx context.Context) ([]domain.Address, error) {
	var out []domain.Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, in domain.Address) (*domain.Address, error) {
	var out domain.Address
	if err := c.do(ctx, http.MethodPost, "/addresses", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, in domain.Address) (*domain.Address, error) {
	var out domain.Address
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/addresses/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/addresses/%d", id), nil, nil, nil)
}

func (c *Client) SetDefaultAddress(ctx context.Context, id int64) (*domain.Address, error) {
	var out domain.Address
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/addresses/%d/default", id), nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits a checkout. The caller decides whether ctx may be canceled.
func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
