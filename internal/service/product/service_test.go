package product

import (
	"context"
	"errors"
	"testing"

	"bosko-storefront/internal/domain"
)

type stubCatalog struct {
	products   []domain.Product
	product    *domain.Product
	err        error
	lastCatID  *int64
	lastGetID  int64
	listCalled int
}

func (s *stubCatalog) Products(_ context.Context, categoryID *int64) ([]domain.Product, error) {
	s.listCalled++
	s.lastCatID = categoryID
	return s.products, s.err
}

func (s *stubCatalog) Product(_ context.Context, id int64) (*domain.Product, error) {
	s.lastGetID = id
	return s.product, s.err
}

func resolver(ref string) string { return "https://cdn/" + ref }

func TestListResolvesImagesAndStock(t *testing.T) {
	api := &stubCatalog{products: []domain.Product{{ID: 1, Image: "a.jpg", Stock: 0}, {ID: 2, Image: "b.jpg", Stock: 3}}}
	svc := New(api, resolver)
	cat := int64(4)

	got, err := svc.List(context.Background(), &cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastCatID == nil || *api.lastCatID != 4 {
		t.Fatalf("expected category filter to be forwarded")
	}
	if got[0].Image != "https://cdn/a.jpg" || *got[0].InStock || !*got[1].InStock {
		t.Fatalf("unexpected decoration: %+v", got)
	}
}

func TestListRejectsBadCategory(t *testing.T) {
	api := &stubCatalog{}
	bad := int64(0)
	if _, err := New(api, nil).List(context.Background(), &bad); err == nil {
		t.Fatalf("expected error")
	}
	if api.listCalled != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestGet(t *testing.T) {
	api := &stubCatalog{product: &domain.Product{ID: 9, Image: "x.png", Stock: 1}}
	p, err := New(api, resolver).Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastGetID != 9 || p.Image != "https://cdn/x.png" {
		t.Fatalf("unexpected product %+v", p)
	}
	if _, err := New(api, resolver).Get(context.Background(), -1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
