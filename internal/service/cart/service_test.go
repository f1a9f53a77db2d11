package cart

import (
	"context"
	"errors"
	"testing"

	"bosko-storefront/internal/cart"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/repository/storage"
)

type stubProducts struct {
	product *domain.Product
	err     error
	lastID  int64
	calls   int
}

func (s *stubProducts) Get(_ context.Context, id int64) (*domain.Product, error) {
	s.calls++
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.product
	return &clone, nil
}

func newStore() *cart.Store {
	return cart.New(storage.Scope(storage.NewMemory(), "dev"), nil)
}

func TestAddFetchesProductAndBuildsView(t *testing.T) {
	products := &stubProducts{product: &domain.Product{ID: 7, Name: "Hoodie", Price: domain.Cents(2500), Image: "https://img/h.jpg"}}
	svc := New(products, nil)
	store := newStore()

	if _, err := svc.Add(context.Background(), store, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := svc.Add(context.Background(), store, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.lastID != 7 || products.calls != 2 {
		t.Fatalf("expected product lookups, got id=%d calls=%d", products.lastID, products.calls)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 {
		t.Fatalf("expected one line with qty 2, got %+v", view.Lines)
	}
	if view.Lines[0].LineTotal != domain.Cents(5000) || view.Lines[0].ImageURL != "https://img/h.jpg" {
		t.Fatalf("unexpected line view %+v", view.Lines[0])
	}
	if view.Subtotal != domain.Cents(5000) || view.Tax != domain.Cents(500) || view.Total != domain.Cents(5500) {
		t.Fatalf("unexpected totals %+v", view.CartTotals)
	}
}

func TestAddValidation(t *testing.T) {
	svc := New(&stubProducts{err: domain.ErrNotFound}, nil)
	store := newStore()

	if _, err := svc.Add(context.Background(), store, 0); err == nil {
		t.Fatalf("expected error for missing productId")
	}
	if _, err := svc.Add(context.Background(), store, 5); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("cart must stay empty")
	}
}

func TestAddPropagatesBackendErrors(t *testing.T) {
	boom := errors.New("backend down")
	svc := New(&stubProducts{err: boom}, nil)
	if _, err := svc.Add(context.Background(), newStore(), 5); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestQuantityRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc := New(&stubProducts{product: &domain.Product{ID: 1, Price: 100}}, func(ref string) string { return "/img/" + ref })
	store := newStore()
	store.Add(ctx, domain.Product{ID: 1, Price: 100})
	store.Add(ctx, domain.Product{ID: 2, Price: 300, Image: "b.jpg"})

	view := svc.SetQuantity(ctx, store, 1, 4)
	if view.ItemCount != 5 {
		t.Fatalf("expected 5 items, got %d", view.ItemCount)
	}
	if view.Lines[1].ImageURL != "/img/b.jpg" {
		t.Fatalf("expected resolved image, got %q", view.Lines[1].ImageURL)
	}
	view = svc.SetQuantity(ctx, store, 1, 0)
	if len(view.Lines) != 1 || view.Lines[0].ProductID != 2 {
		t.Fatalf("expected only product 2, got %+v", view.Lines)
	}
	view = svc.Remove(ctx, store, 2)
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart")
	}
	store.Add(ctx, domain.Product{ID: 3, Price: 1})
	if view = svc.Clear(ctx, store); view.ItemCount != 0 || view.Total != 0 {
		t.Fatalf("expected cleared cart, got %+v", view)
	}
}
