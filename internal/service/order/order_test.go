// internal/service/order/order_test.go
package order

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"bookstore-service/internal/domain/cart"
	"bookstore-service/internal/domain/order"
	"bookstore-service/internal/domain/subscription"
	"bookstore-service/internal/gateway/razorpay"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test_key_secret"

type fakeOrderRepo struct {
	orders     map[int64]*order.Order
	items      []order.Item
	nextID     int64
	gatewayIDs map[int64]string
	paid       map[int64]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     map[int64]*order.Order{},
		nextID:     1,
		gatewayIDs: map[int64]string{},
		paid:       map[int64]string{},
	}
}

func (f *fakeOrderRepo) CreateWithTx(_ context.Context, _ pgx.Tx, o *order.Order) error {
	o.ID = f.nextID
	f.nextID++
	clone := *o
	f.orders[o.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) InsertItemsWithTx(_ context.Context, _ pgx.Tx, items []order.Item) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrderRepo) FindByIDForUser(_ context.Context, id, userID int64) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return nil, xerrors.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) SetGatewayOrderID(_ context.Context, orderID int64, gatewayOrderID string) error {
	if _, ok := f.orders[orderID]; !ok {
		return xerrors.ErrNotFound
	}
	f.gatewayIDs[orderID] = gatewayOrderID
	return nil
}

func (f *fakeOrderRepo) MarkPaidWithTx(_ context.Context, _ pgx.Tx, orderID int64, gatewayPaymentID string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return xerrors.ErrNotFound
	}
	o.Status = order.StatusPaid
	o.PaymentStatus = order.PaymentSuccess
	f.paid[orderID] = gatewayPaymentID
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, _ int64) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) PaidByDate(_ context.Context, _ int64) ([]order.DateSummary, error) {
	return nil, nil
}

func (f *fakeOrderRepo) DetailRows(_ context.Context, _, _ int64) ([]order.DetailRow, error) {
	return nil, nil
}

func (f *fakeOrderRepo) AdminList(_ context.Context, _, _ int) ([]order.AdminRow, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SuccessfulPayments(_ context.Context, _ int64) ([]subscription.HistoryEntry, error) {
	return nil, nil
}

type fakeQuoter struct {
	quote *cart.Quote
	err   error
}

func (f *fakeQuoter) Quote(_ context.Context, _ int64) (*cart.Quote, error) {
	return f.quote, f.err
}

type fakeCartClearer struct {
	cleared bool
}

func (f *fakeCartClearer) ClearByUserWithTx(_ context.Context, _ pgx.Tx, _ int64) error {
	f.cleared = true
	return nil
}

type fakeGateway struct {
	lastAmount  int64
	lastReceipt string
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*razorpay.Order, error) {
	f.lastAmount = amount
	f.lastReceipt = receipt
	return &razorpay.Order{ID: "order_rzp123", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (f *fakeGateway) KeySecret() string { return testSecret }

type fakeTx struct{}

func (fakeTx) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error { return fn(nil) }

type fakeEvents struct {
	types []string
}

func (f *fakeEvents) Publish(eventType string, _ interface{}) {
	f.types = append(f.types, eventType)
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestService(repo *fakeOrderRepo, quoter *fakeQuoter, clearer *fakeCartClearer, gw *fakeGateway, events *fakeEvents) *Service {
	return NewService(repo, quoter, clearer, gw, fakeTx{}, events, "INR", zap.NewNop())
}

func TestCheckoutSnapshotsCartTotals(t *testing.T) {
	repo := newFakeOrderRepo()
	quoter := &fakeQuoter{quote: &cart.Quote{
		Items: []cart.PricedItem{
			{ProductID: 1, Format: cart.FormatPaperback, Quantity: 2, UnitPrice: 250},
			{ProductID: 2, Format: cart.FormatEbook, Quantity: 1, UnitPrice: 200},
		},
		Subtotal: 700,
		Shipping: 129,
		Total:    829,
	}}
	svc := newTestService(repo, quoter, &fakeCartClearer{}, &fakeGateway{}, &fakeEvents{})

	resp, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 829.0, resp.Total)
	assert.Equal(t, 129.0, resp.Shipping)

	created := repo.orders[resp.OrderID]
	require.NotNil(t, created)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.Equal(t, 829.0, created.TotalAmount)
	require.Len(t, repo.items, 2)
	assert.Equal(t, 250.0, repo.items[0].Price)
	assert.Equal(t, 2, repo.items[0].Quantity)
	assert.Equal(t, 1, repo.items[1].Quantity)
}

func TestCheckoutEmptyCartCreatesNothing(t *testing.T) {
	repo := newFakeOrderRepo()
	quoter := &fakeQuoter{err: xerrors.ErrEmptyCart}
	svc := newTestService(repo, quoter, &fakeCartClearer{}, &fakeGateway{}, &fakeEvents{})

	_, err := svc.Checkout(context.Background(), 7)
	assert.ErrorIs(t, err, xerrors.ErrEmptyCart)
	assert.Empty(t, repo.orders)
}

func TestCreatePaymentOrderConvertsToMinorUnits(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &order.Order{ID: 1, UserID: 7, TotalAmount: 829, Status: order.StatusPending}
	repo.nextID = 2
	gw := &fakeGateway{}
	svc := newTestService(repo, &fakeQuoter{}, &fakeCartClearer{}, gw, &fakeEvents{})

	gwOrder, err := svc.CreatePaymentOrder(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(82900), gw.lastAmount)
	assert.Equal(t, "receipt_1", gw.lastReceipt)
	assert.Equal(t, "order_rzp123", repo.gatewayIDs[1])
	assert.Equal(t, "order_rzp123", gwOrder.ID)
}

func TestCreatePaymentOrderRejectsOthersOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &order.Order{ID: 1, UserID: 7, TotalAmount: 829, Status: order.StatusPending}
	svc := newTestService(repo, &fakeQuoter{}, &fakeCartClearer{}, &fakeGateway{}, &fakeEvents{})

	_, err := svc.CreatePaymentOrder(context.Background(), 99, 1)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestVerifyPaymentMarksPaidAndClearsCart(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &order.Order{ID: 1, UserID: 7, TotalAmount: 829, Status: order.StatusPending}
	clearer := &fakeCartClearer{}
	events := &fakeEvents{}
	svc := newTestService(repo, &fakeQuoter{}, clearer, &fakeGateway{}, events)

	err := svc.VerifyPayment(context.Background(), 7, &order.VerifyPaymentRequest{
		GatewayOrderID:   "order_rzp123",
		GatewayPaymentID: "pay_abc",
		Signature:        sign(testSecret, "order_rzp123", "pay_abc"),
		OrderID:          1,
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, repo.orders[1].Status)
	assert.Equal(t, order.PaymentSuccess, repo.orders[1].PaymentStatus)
	assert.Equal(t, "pay_abc", repo.paid[1])
	assert.True(t, clearer.cleared)
	assert.Contains(t, events.types, "order.paid")
}

func TestVerifyPaymentBadSignatureLeavesOrderPending(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.orders[1] = &order.Order{ID: 1, UserID: 7, TotalAmount: 829, Status: order.StatusPending}
	clearer := &fakeCartClearer{}
	svc := newTestService(repo, &fakeQuoter{}, clearer, &fakeGateway{}, &fakeEvents{})

	err := svc.VerifyPayment(context.Background(), 7, &order.VerifyPaymentRequest{
		GatewayOrderID:   "order_rzp123",
		GatewayPaymentID: "pay_abc",
		Signature:        "deadbeef",
		OrderID:          1,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidSignature)

	assert.Equal(t, order.StatusPending, repo.orders[1].Status)
	assert.False(t, clearer.cleared)
}
