// internal/service/catalog/catalog.go
package catalog

import (
	"context"

	"bookstore-service/internal/domain/catalog"
)

// Repository is the catalog persistence surface this service needs.
type Repository interface {
	ListPublished(ctx context.Context, limit, offset int) ([]catalog.Product, error)
	FindBySlug(ctx context.Context, slug string) (*catalog.ProductDetail, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves the published storefront listing.
func (s *Service) List(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	return s.repo.ListPublished(ctx, limit, offset)
}

// BySlug retrieves a published product with its ebook pricing when present.
func (s *Service) BySlug(ctx context.Context, slug string) (*catalog.ProductDetail, error) {
	return s.repo.FindBySlug(ctx, slug)
}
