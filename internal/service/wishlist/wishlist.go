// internal/service/wishlist/wishlist.go
package wishlist

import (
	"context"

	"bookstore-service/internal/domain/wishlist"
)

// Repository is the wishlist persistence surface this service needs.
type Repository interface {
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]wishlist.Item, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the product's wishlist membership and reports the new state.
func (s *Service) Toggle(ctx context.Context, userID, productID int64) (*wishlist.ToggleResponse, error) {
	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
		return &wishlist.ToggleResponse{Status: "removed"}, nil
	}

	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return nil, err
	}
	return &wishlist.ToggleResponse{Status: "added"}, nil
}

// List retrieves the user's wishlist.
func (s *Service) List(ctx context.Context, userID int64) ([]wishlist.Item, error) {
	return s.repo.ListByUser(ctx, userID)
}
