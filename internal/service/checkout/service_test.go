package checkout

import (
	"context"
	"errors"
	"testing"

	"bosko-storefront/internal/cart"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/repository/storage"
)

type stubOrders struct {
	order     *domain.Order
	err       error
	lastReq   domain.CreateOrderRequest
	ctxErr    error
	calls     int
	orders    []domain.Order
	lastGetID int64
	during    func()
}

func (s *stubOrders) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	s.calls++
	s.lastReq = req
	s.ctxErr = ctx.Err()
	if s.during != nil {
		s.during()
	}
	return s.order, s.err
}

func (s *stubOrders) Orders(context.Context) ([]domain.Order, error) { return s.orders, s.err }

func (s *stubOrders) Order(_ context.Context, id int64) (*domain.Order, error) {
	s.lastGetID = id
	return s.order, s.err
}

var address = domain.ShippingAddress{
	FullName: "Ana Perez", Phone: "555", Street: "Main 1", City: "Lima", State: "Lima", PostalCode: "15001", Country: "PE",
}

func filledStore(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.New(storage.Scope(storage.NewMemory(), "dev"), nil)
	ctx := context.Background()
	s.Add(ctx, domain.Product{ID: 1, Name: "Tee", Price: domain.Cents(1000), Image: "tee.jpg"})
	s.Add(ctx, domain.Product{ID: 1, Name: "Tee", Price: domain.Cents(1000), Image: "tee.jpg"})
	s.Add(ctx, domain.Product{ID: 2, Name: "Cap", Price: domain.Cents(500)})
	return s
}

func TestSubmitBuildsOrderAndClearsCart(t *testing.T) {
	api := &stubOrders{order: &domain.Order{ID: 10, OrderNumber: "ORD-10", Total: domain.Cents(2750)}}
	store := filledStore(t)

	order, err := New(api, nil).Submit(context.Background(), &identity.Identity{UserID: "42"}, store,
		Input{ShippingAddress: address, PaymentMethod: " PayPal ", Notes: " leave at door "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID != 10 {
		t.Fatalf("unexpected order %+v", order)
	}
	req := api.lastReq
	if req.CustomerID != 42 || req.PaymentMethod != domain.PaymentPayPal || req.Notes != "leave at door" {
		t.Fatalf("unexpected request %+v", req)
	}
	if len(req.Items) != 2 || req.Items[0].Quantity != 2 || req.Items[0].UnitPrice != domain.Cents(1000) || req.Items[0].ProductImage != "tee.jpg" {
		t.Fatalf("unexpected items %+v", req.Items)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("expected cart to be cleared")
	}
}

func TestSubmitKeepsItemsAddedWhileInFlight(t *testing.T) {
	store := filledStore(t)
	api := &stubOrders{order: &domain.Order{ID: 11}}
	api.during = func() {
		ctx := context.Background()
		store.Add(ctx, domain.Product{ID: 1, Name: "Tee", Price: domain.Cents(1000)})
		store.Add(ctx, domain.Product{ID: 3, Name: "Sock", Price: domain.Cents(200)})
	}

	if _, err := New(api, nil).Submit(context.Background(), &identity.Identity{UserID: "7"}, store, Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	lines := store.Lines()
	if len(lines) != 2 || lines[0].ProductID != 1 || lines[0].Quantity != 1 || lines[1].ProductID != 3 {
		t.Fatalf("expected only the lines added during submission to remain, got %+v", lines)
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	api := &stubOrders{order: &domain.Order{ID: 1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(api, nil).Submit(ctx, &identity.Identity{UserID: "1"}, filledStore(t), Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if api.ctxErr != nil {
		t.Fatalf("expected backend call to run with a live context, got %v", api.ctxErr)
	}
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	boom := errors.New("backend error")
	store := filledStore(t)
	_, err := New(&stubOrders{err: boom}, nil).Submit(context.Background(), &identity.Identity{UserID: "1"}, store, Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash})
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if store.ItemCount() != 3 {
		t.Fatalf("cart must survive a failed checkout")
	}
}

func TestSubmitValidation(t *testing.T) {
	empty := cart.New(storage.Scope(storage.NewMemory(), "dev"), nil)
	badAddress := address
	badAddress.City = ""
	cases := []struct {
		name  string
		who   *identity.Identity
		store *cart.Store
		in    Input
		want  error
	}{
		{"anonymous", nil, filledStore(t), Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash}, ErrNotSignedIn},
		{"non numeric id", &identity.Identity{UserID: "abc"}, filledStore(t), Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash}, ErrInvalidCustomer},
		{"payment", &identity.Identity{UserID: "1"}, filledStore(t), Input{ShippingAddress: address, PaymentMethod: "bitcoin"}, ErrInvalidPayment},
		{"empty cart", &identity.Identity{UserID: "1"}, empty, Input{ShippingAddress: address, PaymentMethod: domain.PaymentCash}, ErrEmptyCart},
	}
	for _, tc := range cases {
		api := &stubOrders{}
		if _, err := New(api, nil).Submit(context.Background(), tc.who, tc.store, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if api.calls != 0 {
			t.Fatalf("%s: backend must not be called", tc.name)
		}
	}
	if _, err := New(&stubOrders{}, nil).Submit(context.Background(), &identity.Identity{UserID: "1"}, filledStore(t), Input{ShippingAddress: badAddress, PaymentMethod: domain.PaymentCash}); err == nil {
		t.Fatalf("expected address validation error")
	}
}

func TestHistoryAndGet(t *testing.T) {
	api := &stubOrders{orders: []domain.Order{{ID: 1}, {ID: 2}}, order: &domain.Order{ID: 2}}
	svc := New(api, nil)
	if list, err := svc.History(context.Background()); err != nil || len(list) != 2 {
		t.Fatalf("unexpected history %+v %v", list, err)
	}
	if o, err := svc.Get(context.Background(), 2); err != nil || o.ID != 2 || api.lastGetID != 2 {
		t.Fatalf("unexpected order %+v %v", o, err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
