package api

import (
	"context"
	"fmt"
	"net/http"

	"bosko-storefront/internal/domain"
)

func (c *Client) AdminStats(ctx context.Context) (*domain.OrderStats, error) {
	var out domain.OrderStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminProducts(ctx context.Context, q ListQuery) (*Paged[domain.Product], error) {
	var out Paged[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/admin/products", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d", id), nil, nil, nil)
}

func (c *Client) AdminCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/admin/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	var out domain.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (*domain.Category, error) {
	var out domain.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/categories/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", id), nil, nil, nil)
}

func (c *Client) AdminUsers(ctx context.Context, q ListQuery) (*Paged[domain.User], error) {
	var out Paged[domain.User]
	if err := c.do(ctx, http.MethodGet, "/admin/users", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUser(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangeUserRole(ctx context.Context, id int64, role domain.Role) error {
	body := map[string]domain.Role{"role": role}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", id), nil, body, nil)
}

func (c *Client) ToggleUserStatus(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/toggle-status", id), nil, struct{}{}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, nil)
}

// AdminOrderSummary is one row of the admin order list.
type AdminOrderSummary struct {
	ID            int64              `json:"id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Items         int                `json:"items"`
	Amount        domain.Money       `json:"amount"`
	Status        domain.OrderStatus `json:"status"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type AdminOrderList struct {
	Orders     []AdminOrderSummary `json:"orders"`
	Pagination struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Pages int `json:"pages"`
		Limit int `json:"limit"`
	} `json:"pagination"`
}

func (c *Client) AdminOrders(ctx context.Context, q ListQuery) (*AdminOrderList, error) {
	var out AdminOrderList
	if err := c.do(ctx, http.MethodGet, "/admin/orders", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/orders/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, in domain.OrderStatusUpdate) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", id), nil, in, nil)
}
