// internal/service/cart/cart.go
package cart

import (
	"context"

	"bookstore-service/internal/domain/cart"
	xerrors "bookstore-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the cart persistence surface this service needs.
type Repository interface {
	Upsert(ctx context.Context, line *cart.Line) error
	ListWithPricing(ctx context.Context, userID int64) ([]cart.PricedItem, error)
	UpdateQuantity(ctx context.Context, lineID, userID int64, quantity int) error
	Remove(ctx context.Context, lineID, userID int64) error
	Count(ctx context.Context, userID int64) (int, error)
}

type Service struct {
	repo        Repository
	shippingFee float64
	logger      *zap.Logger
}

func NewService(repo Repository, shippingFee float64, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Add puts a product line into the user's cart. Ebook lines always enter with
// quantity 1; the row-level merge keeps them there.
func (s *Service) Add(ctx context.Context, userID int64, req *cart.AddToCartRequest) error {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if cart.Format(req.Format) == cart.FormatEbook {
		quantity = 1
	}

	line := &cart.Line{
		UserID:    userID,
		ProductID: req.ProductID,
		Format:    cart.Format(req.Format),
		Quantity:  quantity,
	}

	if err := s.repo.Upsert(ctx, line); err != nil {
		s.logger.Error("failed to add to cart",
			zap.Int64("user_id", userID),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// List retrieves the user's cart with resolved unit prices.
func (s *Service) List(ctx context.Context, userID int64) ([]cart.PricedItem, error) {
	return s.repo.ListWithPricing(ctx, userID)
}

// UpdateQuantity changes a paperback line's quantity.
func (s *Service) UpdateQuantity(ctx context.Context, userID int64, lineID int64, quantity int) error {
	if quantity < 1 {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "quantity must be at least 1")
	}
	return s.repo.UpdateQuantity(ctx, lineID, userID, quantity)
}

// Remove deletes a line from the user's cart.
func (s *Service) Remove(ctx context.Context, userID, lineID int64) error {
	return s.repo.Remove(ctx, lineID, userID)
}

// Count sums the stored quantities for the cart badge.
func (s *Service) Count(ctx context.Context, userID int64) (int, error) {
	return s.repo.Count(ctx, userID)
}

// Quote prices the user's cart. Ebook lines count once regardless of stored
// quantity, and the flat shipping fee applies only when a paperback is
// present. Returns ErrEmptyCart for an empty cart.
func (s *Service) Quote(ctx context.Context, userID int64) (*cart.Quote, error) {
	items, err := s.repo.ListWithPricing(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, xerrors.ErrEmptyCart
	}

	var subtotal float64
	hasPaperback := false
	for i := range items {
		subtotal += items[i].UnitPrice * float64(items[i].EffectiveQuantity())
		if items[i].Format == cart.FormatPaperback {
			hasPaperback = true
		}
	}

	shipping := 0.0
	if hasPaperback {
		shipping = s.shippingFee
	}

	return &cart.Quote{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}, nil
}
