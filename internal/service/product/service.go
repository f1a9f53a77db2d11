package product

import (
	"context"
	"errors"

	"bosko-storefront/internal/domain"
)

type catalog interface {
	Products(ctx context.Context, categoryID *int64) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

// Service serves the public catalog with image references resolved to URLs.
type Service struct {
	api      catalog
	imageURL func(string) string
}

func New(api catalog, imageURL func(string) string) *Service {
	if imageURL == nil {
		imageURL = func(s string) string { return s }
	}
	return &Service{api: api, imageURL: imageURL}
}

func (s *Service) List(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	if categoryID != nil && *categoryID <= 0 {
		return nil, errors.New("categoryId must be positive")
	}
	products, err := s.api.Products(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		s.decorate(&products[i])
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	p, err := s.api.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(p)
	return p, nil
}

func (s *Service) decorate(p *domain.Product) {
	p.Image = s.imageURL(p.Image)
	if p.InStock == nil {
		in := p.Stock > 0
		p.InStock = &in
	}
}
