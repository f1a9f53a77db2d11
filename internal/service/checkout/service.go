package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"bosko-storefront/internal/cart"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/identity"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotSignedIn     = errors.New("sign in to place an order")
	ErrInvalidPayment  = errors.New("unsupported payment method")
	ErrInvalidCustomer = errors.New("signed-in user has no numeric id")
)

type orderAPI interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Order(ctx context.Context, id int64) (*domain.Order, error)
}

type Service struct {
	api    orderAPI
	logger *log.Logger
}

func New(api orderAPI, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{api: api, logger: logger}
}

type Input struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
	Notes           string                 `json:"notes,omitempty"`
}

// Submit places an order for the cart contents and, once the backend accepts
// it, takes the ordered quantities out of the cart. The submission is not canceled when the caller goes
// away; a timeout, if any, comes from the HTTP client.
func (s *Service) Submit(ctx context.Context, who *identity.Identity, store *cart.Store, in Input) (*domain.Order, error) {
	if who == nil {
		return nil, ErrNotSignedIn
	}
	customerID, err := strconv.ParseInt(who.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidCustomer
	}
	in.PaymentMethod = domain.PaymentMethod(strings.ToLower(strings.TrimSpace(string(in.PaymentMethod))))
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}
	if err := validateAddress(in.ShippingAddress); err != nil {
		return nil, err
	}
	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := domain.CreateOrderRequest{
		CustomerID:      customerID,
		Items:           make([]domain.OrderItem, 0, len(lines)),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           strings.TrimSpace(in.Notes),
	}
	for _, l := range lines {
		req.Items = append(req.Items, domain.OrderItem{
			ProductID:    l.ProductID,
			ProductName:  l.Name,
			ProductImage: l.ImageRef,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
		})
	}

	ctx = context.WithoutCancel(ctx)
	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order %s placed by user %s: %d items total=%s", order.OrderNumber, who.UserID, len(req.Items), order.Total)
	store.Deduct(ctx, lines)
	return order, nil
}

func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	return s.api.Orders(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.api.Order(ctx, id)
}

func validateAddress(a domain.ShippingAddress) error {
	required := []struct {
		name, value string
	}{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("shippingAddress.%s required", f.name)
		}
	}
	return nil
}
