// internal/service/cart/cart_test.go
package cart

import (
	"context"
	"testing"

	"bookstore-service/internal/domain/cart"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCartRepo struct {
	items     []cart.PricedItem
	lastLine  *cart.Line
	updateErr error
}

func (f *fakeCartRepo) Upsert(_ context.Context, line *cart.Line) error {
	f.lastLine = line
	return nil
}

func (f *fakeCartRepo) ListWithPricing(_ context.Context, _ int64) ([]cart.PricedItem, error) {
	return f.items, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, _, _ int64, _ int) error {
	return f.updateErr
}

func (f *fakeCartRepo) Remove(_ context.Context, _, _ int64) error { return nil }

func (f *fakeCartRepo) Count(_ context.Context, _ int64) (int, error) {
	total := 0
	for _, item := range f.items {
		total += item.Quantity
	}
	return total, nil
}

func newCartService(repo *fakeCartRepo) *Service {
	return NewService(repo, 129, zap.NewNop())
}

func TestQuoteShippingOnlyForPaperbacks(t *testing.T) {
	repo := &fakeCartRepo{items: []cart.PricedItem{
		{ProductID: 1, Format: cart.FormatPaperback, Quantity: 2, UnitPrice: 250},
		{ProductID: 2, Format: cart.FormatEbook, Quantity: 1, UnitPrice: 200},
	}}
	svc := newCartService(repo)

	quote, err := svc.Quote(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 700.0, quote.Subtotal)
	assert.Equal(t, 129.0, quote.Shipping)
	assert.Equal(t, 829.0, quote.Total)
}

func TestQuoteEbookOnlyCartShipsFree(t *testing.T) {
	repo := &fakeCartRepo{items: []cart.PricedItem{
		{ProductID: 1, Format: cart.FormatEbook, Quantity: 1, UnitPrice: 199},
		{ProductID: 2, Format: cart.FormatEbook, Quantity: 1, UnitPrice: 99},
	}}
	svc := newCartService(repo)

	quote, err := svc.Quote(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 298.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Shipping)
	assert.Equal(t, 298.0, quote.Total)
}

func TestQuotePinsEbookQuantityToOne(t *testing.T) {
	// A stale row with quantity 3 must still price as a single copy.
	repo := &fakeCartRepo{items: []cart.PricedItem{
		{ProductID: 1, Format: cart.FormatEbook, Quantity: 3, UnitPrice: 100},
	}}
	svc := newCartService(repo)

	quote, err := svc.Quote(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 100.0, quote.Subtotal)
	assert.Equal(t, 100.0, quote.Total)
}

func TestQuoteEmptyCart(t *testing.T) {
	svc := newCartService(&fakeCartRepo{})

	_, err := svc.Quote(context.Background(), 7)
	assert.ErrorIs(t, err, xerrors.ErrEmptyCart)
}

func TestAddForcesEbookQuantity(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := newCartService(repo)

	err := svc.Add(context.Background(), 7, &cart.AddToCartRequest{
		ProductID: 4,
		Format:    cart.FormatEbook,
		Quantity:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lastLine.Quantity)
}

func TestAddDefaultsQuantity(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := newCartService(repo)

	err := svc.Add(context.Background(), 7, &cart.AddToCartRequest{
		ProductID: 4,
		Format:    cart.FormatPaperback,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lastLine.Quantity)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	svc := newCartService(&fakeCartRepo{})

	err := svc.UpdateQuantity(context.Background(), 7, 1, 0)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
