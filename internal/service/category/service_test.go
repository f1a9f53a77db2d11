package category

import (
	"context"
	"errors"
	"testing"

	"bosko-storefront/internal/domain"
)

type stubCatalog struct {
	categories []domain.Category
	err        error
}

func (s *stubCatalog) Categories(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubCatalog) Category(_ context.Context, id int64) (*domain.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestListAndGet(t *testing.T) {
	api := &stubCatalog{categories: []domain.Category{{ID: 1, Name: "Shirts", Image: "/img/s.jpg"}}}
	svc := New(api, func(ref string) string { return "https://assets" + ref })

	list, err := svc.List(context.Background())
	if err != nil || len(list) != 1 || list[0].Image != "https://assets/img/s.jpg" {
		t.Fatalf("unexpected list %+v err=%v", list, err)
	}
	c, err := svc.Get(context.Background(), 1)
	if err != nil || c.Name != "Shirts" {
		t.Fatalf("unexpected category %+v err=%v", c, err)
	}
	if _, err := svc.Get(context.Background(), 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPropagatesBackendError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := New(&stubCatalog{err: boom}, nil).List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
