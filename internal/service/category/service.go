package category

import (
	"context"

	"bosko-storefront/internal/domain"
)

type catalog interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, id int64) (*domain.Category, error)
}

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

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Image = s.imageURL(categories[i].Image)
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	c, err := s.api.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Image = s.imageURL(c.Image)
	return c, nil
}
