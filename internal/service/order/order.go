// internal/service/order/order.go
package order

import (
	"context"
	"fmt"
	"math"

	"bookstore-service/internal/domain/cart"
	"bookstore-service/internal/domain/order"
	"bookstore-service/internal/domain/subscription"
	"bookstore-service/internal/gateway/razorpay"
	xerrors "bookstore-service/internal/pkg/errors"
	"bookstore-service/internal/ws"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Repository is the order persistence surface this service needs.
type Repository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, o *order.Order) error
	InsertItemsWithTx(ctx context.Context, tx pgx.Tx, items []order.Item) error
	FindByIDForUser(ctx context.Context, id, userID int64) (*order.Order, error)
	SetGatewayOrderID(ctx context.Context, orderID int64, gatewayOrderID string) error
	MarkPaidWithTx(ctx context.Context, tx pgx.Tx, orderID int64, gatewayPaymentID string) error
	ListByUser(ctx context.Context, userID int64) ([]order.Order, error)
	PaidByDate(ctx context.Context, userID int64) ([]order.DateSummary, error)
	DetailRows(ctx context.Context, orderID, userID int64) ([]order.DetailRow, error)
	AdminList(ctx context.Context, limit, offset int) ([]order.AdminRow, error)
	SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error)
}

// Quoter prices the cart at checkout time.
type Quoter interface {
	Quote(ctx context.Context, userID int64) (*cart.Quote, error)
}

// CartClearer empties the cart once payment is confirmed.
type CartClearer interface {
	ClearByUserWithTx(ctx context.Context, tx pgx.Tx, userID int64) error
}

// Gateway is the payment-provider surface used for product checkout.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*razorpay.Order, error)
	KeySecret() string
}

// TxManager runs a function inside a database transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Publisher pushes store events to connected admin dashboards.
type Publisher interface {
	Publish(eventType string, payload interface{})
}

type Service struct {
	repo     Repository
	quoter   Quoter
	cart     CartClearer
	gateway  Gateway
	tx       TxManager
	events   Publisher
	currency string
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	quoter Quoter,
	cartClearer CartClearer,
	gateway Gateway,
	tx TxManager,
	events Publisher,
	currency string,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		quoter:   quoter,
		cart:     cartClearer,
		gateway:  gateway,
		tx:       tx,
		events:   events,
		currency: currency,
		logger:   logger,
	}
}

// Checkout prices the cart and creates a pending order with an immutable
// line-item snapshot. The cart itself survives until payment succeeds.
func (s *Service) Checkout(ctx context.Context, userID int64) (*order.CheckoutResponse, error) {
	quote, err := s.quoter.Quote(ctx, userID)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		UserID:        userID,
		TotalAmount:   quote.Total,
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentPending,
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, o); err != nil {
			return err
		}

		items := make([]order.Item, 0, len(quote.Items))
		for i := range quote.Items {
			items = append(items, order.Item{
				OrderID:   o.ID,
				ProductID: quote.Items[i].ProductID,
				Format:    quote.Items[i].Format,
				Price:     quote.Items[i].UnitPrice,
				Quantity:  quote.Items[i].EffectiveQuantity(),
			})
		}

		return s.repo.InsertItemsWithTx(ctx, tx, items)
	})
	if err != nil {
		s.logger.Error("checkout failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.Float64("total", quote.Total),
	)

	return &order.CheckoutResponse{
		OrderID:  o.ID,
		Subtotal: quote.Subtotal,
		Shipping: quote.Shipping,
		Total:    quote.Total,
	}, nil
}

// CreatePaymentOrder registers the order with the payment gateway and stores
// the gateway-side id. Amount converts to minor units; repeating the call
// issues a fresh gateway order and the latest id wins.
func (s *Service) CreatePaymentOrder(ctx context.Context, userID, orderID int64) (*razorpay.Order, error) {
	o, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusPending {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "order is not payable")
	}

	amount := int64(math.Round(o.TotalAmount * 100))
	receipt := fmt.Sprintf("receipt_%d", o.ID)

	gwOrder, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		s.logger.Error("gateway order creation failed",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.SetGatewayOrderID(ctx, o.ID, gwOrder.ID); err != nil {
		return nil, err
	}

	return gwOrder, nil
}

// VerifyPayment checks the gateway callback signature and, when valid, marks
// the order paid and clears the cart in one transaction. An invalid signature
// leaves the order untouched.
func (s *Service) VerifyPayment(ctx context.Context, userID int64, req *order.VerifyPaymentRequest) error {
	o, err := s.repo.FindByIDForUser(ctx, req.OrderID, userID)
	if err != nil {
		return err
	}

	if !razorpay.VerifySignature(s.gateway.KeySecret(), req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.logger.Warn("payment signature mismatch",
			zap.Int64("order_id", req.OrderID),
			zap.Int64("user_id", userID),
		)
		return xerrors.ErrInvalidSignature
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.MarkPaidWithTx(ctx, tx, o.ID, req.GatewayPaymentID); err != nil {
			return err
		}
		return s.cart.ClearByUserWithTx(ctx, tx, userID)
	})
	if err != nil {
		s.logger.Error("failed to finalize payment",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("order paid",
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
	)

	s.events.Publish(ws.EventOrderPaid, map[string]interface{}{
		"order_id": o.ID,
		"user_id":  userID,
		"amount":   o.TotalAmount,
	})

	return nil
}

// ListByUser retrieves the user's orders.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// PurchaseHistory groups the user's paid orders by date.
func (s *Service) PurchaseHistory(ctx context.Context, userID int64) ([]order.DateSummary, error) {
	return s.repo.PaidByDate(ctx, userID)
}

// Detail retrieves one order's line items, scoped to the owning user.
func (s *Service) Detail(ctx context.Context, userID, orderID int64) ([]order.DetailRow, error) {
	return s.repo.DetailRows(ctx, orderID, userID)
}

// AdminList retrieves all orders for the admin dashboard.
func (s *Service) AdminList(ctx context.Context, limit, offset int) ([]order.AdminRow, error) {
	return s.repo.AdminList(ctx, limit, offset)
}
