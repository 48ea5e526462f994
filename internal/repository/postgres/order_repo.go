// internal/repository/postgres/order_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookstore-service/internal/domain/order"
	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithTx inserts a pending order within a transaction.
func (r *OrderRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	query := `
		INSERT INTO orders (user_id, total_amount, status, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, o.UserID, o.TotalAmount, o.Status, o.PaymentStatus).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// InsertItemsWithTx writes the line-item snapshot for an order.
func (r *OrderRepository) InsertItemsWithTx(ctx context.Context, tx pgx.Tx, items []order.Item) error {
	for i := range items {
		query := `
			INSERT INTO order_items (order_id, product_id, format, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err := tx.QueryRow(
			ctx, query,
			items[i].OrderID, items[i].ProductID, items[i].Format,
			items[i].Price, items[i].Quantity,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

// FindByIDForUser retrieves an order only if it belongs to the user.
func (r *OrderRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*order.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, payment_status,
		       gateway_order_id, gateway_payment_id, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	var o order.Order
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentStatus,
		&o.GatewayOrderID, &o.GatewayPaymentID, &o.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return &o, nil
}

// SetGatewayOrderID stores the gateway-side order id. The latest id wins if
// payment intent creation is repeated.
func (r *OrderRepository) SetGatewayOrderID(ctx context.Context, orderID int64, gatewayOrderID string) error {
	query := `UPDATE orders SET gateway_order_id = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, query, gatewayOrderID, orderID)
	if err != nil {
		return fmt.Errorf("failed to set gateway order id: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// MarkPaidWithTx transitions an order to paid and stores the gateway payment id.
func (r *OrderRepository) MarkPaidWithTx(ctx context.Context, tx pgx.Tx, orderID int64, gatewayPaymentID string) error {
	query := `
		UPDATE orders
		SET status = 'paid', payment_status = 'success', gateway_payment_id = $1
		WHERE id = $2
	`

	result, err := tx.Exec(ctx, query, gatewayPaymentID, orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// ListByUser retrieves the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, payment_status,
		       gateway_order_id, gateway_payment_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []order.Order{}
	for rows.Next() {
		var o order.Order
		err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentStatus,
			&o.GatewayOrderID, &o.GatewayPaymentID, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// PaidByDate groups the user's successful orders for the purchase history view.
func (r *OrderRepository) PaidByDate(ctx context.Context, userID int64) ([]order.DateSummary, error) {
	query := `
		SELECT o.id, o.total_amount, o.created_at,
		       DATE(o.created_at) AS order_date,
		       COUNT(oi.id) AS items_count
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1 AND o.payment_status = 'success'
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid orders: %w", err)
	}
	defer rows.Close()

	summaries := []order.DateSummary{}
	for rows.Next() {
		var s order.DateSummary
		err := rows.Scan(&s.OrderID, &s.TotalAmount, &s.CreatedAt, &s.OrderDate, &s.ItemsCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// DetailRows retrieves an order's line items with product info, scoped to the
// owning user.
func (r *OrderRepository) DetailRows(ctx context.Context, orderID, userID int64) ([]order.DetailRow, error) {
	query := `
		SELECT o.id, o.total_amount, o.status, o.payment_status, o.created_at,
		       oi.product_id, oi.format, oi.price, oi.quantity,
		       p.title, p.slug, p.main_image
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.id = $1 AND o.user_id = $2
	`

	rows, err := r.db.Query(ctx, query, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order detail: %w", err)
	}
	defer rows.Close()

	details := []order.DetailRow{}
	for rows.Next() {
		var d order.DetailRow
		err := rows.Scan(
			&d.OrderID, &d.TotalAmount, &d.Status, &d.PaymentStatus, &d.CreatedAt,
			&d.ProductID, &d.Format, &d.Price, &d.Quantity,
			&d.Title, &d.Slug, &d.MainImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, d)
	}

	if len(details) == 0 {
		return nil, xerrors.ErrNotFound
	}

	return details, nil
}

// AdminList retrieves all orders with their owners, newest first.
func (r *OrderRepository) AdminList(ctx context.Context, limit, offset int) ([]order.AdminRow, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT o.id, o.user_id, u.name, u.email,
		       o.total_amount, o.status, o.payment_status, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []order.AdminRow{}
	for rows.Next() {
		var o order.AdminRow
		err := rows.Scan(
			&o.ID, &o.UserID, &o.UserName, &o.UserEmail,
			&o.TotalAmount, &o.Status, &o.PaymentStatus, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// SuccessfulPayments lists the user's paid orders as payment-history entries.
func (r *OrderRepository) SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error) {
	query := `
		SELECT o.id, 'product', o.total_amount, 'INR', o.payment_status,
		       o.created_at, 'Product Purchase', o.gateway_payment_id
		FROM orders o
		WHERE o.user_id = $1 AND o.payment_status = 'success'
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product payments: %w", err)
	}
	defer rows.Close()

	entries := []subscription.HistoryEntry{}
	for rows.Next() {
		var e subscription.HistoryEntry
		err := rows.Scan(&e.RefID, &e.PaymentType, &e.Amount, &e.Currency,
			&e.Status, &e.Date, &e.Title, &e.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
