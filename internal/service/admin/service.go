package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/domain"
)

type backend interface {
	AdminStats(ctx context.Context) (*domain.OrderStats, error)

	AdminProducts(ctx context.Context, q api.ListQuery) (*api.Paged[domain.Product], error)
	AdminProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	AdminCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	AdminUsers(ctx context.Context, q api.ListQuery) (*api.Paged[domain.User], error)
	AdminUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in domain.UserUpdate) (*domain.User, error)
	ChangeUserRole(ctx context.Context, id int64, role domain.Role) error
	ToggleUserStatus(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error

	AdminOrders(ctx context.Context, q api.ListQuery) (*api.AdminOrderList, error)
	AdminOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, in domain.OrderStatusUpdate) error
}

// Service validates back-office input before forwarding it to the backend.
// Access control happens in front of it.
type Service struct {
	api backend
}

func New(api backend) *Service {
	return &Service{api: api}
}

const maxPageSize = 100

func (s *Service) Stats(ctx context.Context) (*domain.OrderStats, error) {
	return s.api.AdminStats(ctx)
}

func (s *Service) Products(ctx context.Context, q api.ListQuery) (*api.Paged[domain.Product], error) {
	return s.api.AdminProducts(ctx, clampQuery(q))
}

func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.api.AdminProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	return s.api.CreateProduct(ctx, in)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateProduct(ctx, id, in)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.api.DeleteProduct(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.api.AdminCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.New("name required")
	}
	return s.api.CreateCategory(ctx, in)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (*domain.Category, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.New("name required")
	}
	return s.api.UpdateCategory(ctx, id, in)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.api.DeleteCategory(ctx, id)
}

func (s *Service) Users(ctx context.Context, q api.ListQuery) (*api.Paged[domain.User], error) {
	q = clampQuery(q)
	if role, ok := q.Filters["role"]; ok && role != "" {
		parsed, valid := domain.ParseRole(role)
		if !valid {
			return nil, errors.New("unknown role")
		}
		q.Filters["role"] = string(parsed)
	}
	return s.api.AdminUsers(ctx, q)
}

func (s *Service) User(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.api.AdminUser(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in domain.UserUpdate) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return nil, errors.New("name and email required")
	}
	if in.Role != "" {
		role, ok := domain.ParseRole(string(in.Role))
		if !ok {
			return nil, errors.New("unknown role")
		}
		in.Role = role
	}
	return s.api.UpdateUser(ctx, id, in)
}

func (s *Service) ChangeUserRole(ctx context.Context, id int64, raw string) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	role, ok := domain.ParseRole(raw)
	if !ok {
		return errors.New("unknown role")
	}
	return s.api.ChangeUserRole(ctx, id, role)
}

func (s *Service) ToggleUserStatus(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.api.ToggleUserStatus(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.api.DeleteUser(ctx, id)
}

// Orders lists orders; status "all" or empty means no status filter.
func (s *Service) Orders(ctx context.Context, q api.ListQuery) (*api.AdminOrderList, error) {
	q = clampQuery(q)
	if status := q.Filters["status"]; status != "" {
		if strings.EqualFold(status, "all") {
			delete(q.Filters, "status")
		} else if parsed, ok := domain.ParseOrderStatus(status); ok {
			q.Filters["status"] = string(parsed)
		} else {
			return nil, errors.New("unknown order status")
		}
	}
	// The order listing pages with limit rather than pageSize.
	q.Filters["limit"] = strconv.Itoa(q.PageSize)
	return s.api.AdminOrders(ctx, q)
}

func (s *Service) Order(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.api.AdminOrder(ctx, id)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, in domain.OrderStatusUpdate) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	status, ok := domain.ParseOrderStatus(string(in.Status))
	if !ok {
		return errors.New("unknown order status")
	}
	in.Status = status
	in.Note = strings.TrimSpace(in.Note)
	return s.api.UpdateOrderStatus(ctx, id, in)
}

func validateProduct(in domain.ProductInput) (domain.ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	switch {
	case in.Name == "":
		return in, errors.New("name required")
	case in.Price <= 0:
		return in, errors.New("price must be positive")
	case in.Stock < 0:
		return in, errors.New("stock cannot be negative")
	case in.CategoryID != nil && *in.CategoryID <= 0:
		return in, errors.New("categoryId must be positive")
	}
	return in, nil
}

func clampQuery(q api.ListQuery) api.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = strings.TrimSpace(v)
	}
	q.Filters = filters
	return q
}
