// internal/repository/postgres/subscription_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListActivePlans retrieves the plans currently offered for purchase.
func (r *SubscriptionRepository) ListActivePlans(ctx context.Context) ([]subscription.Plan, error) {
	query := `
		SELECT id, plan_key, title, base_price, status
		FROM subscription_plans
		WHERE status = 'active'
		ORDER BY base_price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []subscription.Plan{}
	for rows.Next() {
		var p subscription.Plan
		err := rows.Scan(&p.ID, &p.PlanKey, &p.Title, &p.BasePrice, &p.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, nil
}

// FindPlanByKey retrieves an active plan by its key.
func (r *SubscriptionRepository) FindPlanByKey(ctx context.Context, planKey string) (*subscription.Plan, error) {
	query := `
		SELECT id, plan_key, title, base_price, status
		FROM subscription_plans
		WHERE plan_key = $1 AND status = 'active'
	`

	var p subscription.Plan
	err := r.db.QueryRow(ctx, query, planKey).
		Scan(&p.ID, &p.PlanKey, &p.Title, &p.BasePrice, &p.Status)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	return &p, nil
}

// HasActiveSubscription reports whether the user holds an unexpired active
// subscription.
func (r *SubscriptionRepository) HasActiveSubscription(ctx context.Context, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_subscriptions
			WHERE user_id = $1 AND status = 'active' AND end_date >= CURRENT_DATE
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active subscription: %w", err)
	}

	return exists, nil
}

// FindPendingByUser retrieves the user's most recent pending subscription,
// if any. A user carries at most one pending subscription at a time, so the
// lookup is not scoped to a plan or term.
func (r *SubscriptionRepository) FindPendingByUser(ctx context.Context, userID int64) (*subscription.UserSubscription, error) {
	query := `
		SELECT id, user_id, plan_id, months, amount_paid, start_date, end_date, status, created_at
		FROM user_subscriptions
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var s subscription.UserSubscription
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.Months, &s.AmountPaid,
		&s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending subscription: %w", err)
	}

	return &s, nil
}

// CreatePending inserts a new pending subscription row.
func (r *SubscriptionRepository) CreatePending(ctx context.Context, s *subscription.UserSubscription) error {
	query := `
		INSERT INTO user_subscriptions (user_id, plan_id, months, amount_paid, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		s.UserID, s.PlanID, s.Months, s.AmountPaid, s.StartDate, s.EndDate, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// FindPendingByIDAndUser retrieves a pending subscription only if it belongs
// to the user.
func (r *SubscriptionRepository) FindPendingByIDAndUser(ctx context.Context, id, userID int64) (*subscription.UserSubscription, error) {
	query := `
		SELECT id, user_id, plan_id, months, amount_paid, start_date, end_date, status, created_at
		FROM user_subscriptions
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
	`

	var s subscription.UserSubscription
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.Months, &s.AmountPaid,
		&s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return &s, nil
}

// HasPaymentWithTx reports whether a gateway payment id has already been
// recorded. Used as the duplicate-activation guard.
func (r *SubscriptionRepository) HasPaymentWithTx(ctx context.Context, tx pgx.Tx, gatewayPaymentID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscription_payments WHERE gateway_payment_id = $1
		)
	`

	var exists bool
	if err := tx.QueryRow(ctx, query, gatewayPaymentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment: %w", err)
	}

	return exists, nil
}

// InsertPaymentWithTx records a successful subscription payment.
func (r *SubscriptionRepository) InsertPaymentWithTx(ctx context.Context, tx pgx.Tx, p *subscription.Payment) error {
	query := `
		INSERT INTO subscription_payments
			(user_subscription_id, gateway_payment_id, gateway_order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := tx.QueryRow(
		ctx, query,
		p.UserSubscriptionID, p.GatewayPaymentID, p.GatewayOrderID,
		p.Amount, p.Currency, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert subscription payment: %w", err)
	}

	return nil
}

// ActivateWithTx flips a pending subscription to active.
func (r *SubscriptionRepository) ActivateWithTx(ctx context.Context, tx pgx.Tx, subscriptionID int64) error {
	query := `UPDATE user_subscriptions SET status = 'active' WHERE id = $1`

	result, err := tx.Exec(ctx, query, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpsertAccessWithTx grants or replaces the user's single entitlement row.
func (r *SubscriptionRepository) UpsertAccessWithTx(ctx context.Context, tx pgx.Tx, a *subscription.Access) error {
	query := `
		INSERT INTO user_subscription_access (user_id, subscription_id, expires_at, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			subscription_id = EXCLUDED.subscription_id,
			expires_at      = EXCLUDED.expires_at,
			status          = EXCLUDED.status
	`

	_, err := tx.Exec(ctx, query, a.UserID, a.SubscriptionID, a.ExpiresAt, a.Status)
	if err != nil {
		return fmt.Errorf("failed to grant access: %w", err)
	}

	return nil
}

// FindAccess retrieves the user's entitlement row, if any.
func (r *SubscriptionRepository) FindAccess(ctx context.Context, userID int64) (*subscription.Access, error) {
	query := `
		SELECT id, user_id, subscription_id, expires_at, status
		FROM user_subscription_access
		WHERE user_id = $1
	`

	var a subscription.Access
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&a.ID, &a.UserID, &a.SubscriptionID, &a.ExpiresAt, &a.Status)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find access: %w", err)
	}

	return &a, nil
}

// LatestByUser retrieves the user's most recent subscription with its plan.
func (r *SubscriptionRepository) LatestByUser(ctx context.Context, userID int64) (*subscription.Detail, error) {
	query := `
		SELECT s.id, p.title, p.plan_key, s.months, s.amount_paid,
		       s.start_date, s.end_date, s.status
		FROM user_subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT 1
	`

	var d subscription.Detail
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&d.SubscriptionID, &d.Title, &d.PlanKey, &d.Months, &d.AmountPaid,
		&d.StartDate, &d.EndDate, &d.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	return &d, nil
}

// SuccessfulPayments lists the user's subscription payments as payment-history
// entries.
func (r *SubscriptionRepository) SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error) {
	query := `
		SELECT sp.id, 'subscription', sp.amount, sp.currency, sp.status,
		       sp.created_at, p.title, sp.gateway_payment_id
		FROM subscription_payments sp
		JOIN user_subscriptions s ON s.id = sp.user_subscription_id
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.user_id = $1 AND sp.status = 'success'
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription payments: %w", err)
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
