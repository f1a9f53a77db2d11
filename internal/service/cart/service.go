package cart

import (
	"context"
	"errors"

	"bosko-storefront/internal/cart"
	"bosko-storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type productSource interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

// Service adapts catalog lookups to the device cart store.
type Service struct {
	products productSource
	imageURL func(string) string
}

func New(products productSource, imageURL func(string) string) *Service {
	if imageURL == nil {
		imageURL = func(s string) string { return s }
	}
	return &Service{products: products, imageURL: imageURL}
}

// LineView is a cart line as rendered for the browser.
type LineView struct {
	domain.CartLine
	ImageURL  string       `json:"imageUrl"`
	LineTotal domain.Money `json:"lineTotal"`
}

type View struct {
	Lines []LineView `json:"lines"`
	domain.CartTotals
}

func (s *Service) View(store *cart.Store) View {
	lines := store.Lines()
	out := View{Lines: make([]LineView, 0, len(lines)), CartTotals: cart.ComputeTotals(lines)}
	for _, l := range lines {
		out.Lines = append(out.Lines, LineView{CartLine: l, ImageURL: s.imageURL(l.ImageRef), LineTotal: l.LineTotal()})
	}
	return out
}

// Add looks the product up in the catalog and adds one unit of it. The
// catalog price at this moment is the price kept in the line.
func (s *Service) Add(ctx context.Context, store *cart.Store, productID int64) (View, error) {
	if productID <= 0 {
		return View{}, errors.New("productId required")
	}
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return View{}, ErrProductNotFound
		}
		return View{}, err
	}
	store.Add(ctx, *p)
	return s.View(store), nil
}

func (s *Service) SetQuantity(ctx context.Context, store *cart.Store, productID int64, quantity int) View {
	store.SetQuantity(ctx, productID, quantity)
	return s.View(store)
}

func (s *Service) Remove(ctx context.Context, store *cart.Store, productID int64) View {
	store.Remove(ctx, productID)
	return s.View(store)
}

func (s *Service) Clear(ctx context.Context, store *cart.Store) View {
	store.Clear(ctx)
	return s.View(store)
}
