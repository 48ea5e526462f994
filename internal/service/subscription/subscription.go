// internal/service/subscription/subscription.go
package subscription

import (
	"context"
	"errors"
	"time"

	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"
	"bookstore-service/internal/ws"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Repository is the subscription persistence surface this service needs.
type Repository interface {
	ListActivePlans(ctx context.Context) ([]subscription.Plan, error)
	FindPlanByKey(ctx context.Context, planKey string) (*subscription.Plan, error)
	HasActiveSubscription(ctx context.Context, userID int64) (bool, error)
	FindPendingByUser(ctx context.Context, userID int64) (*subscription.UserSubscription, error)
	CreatePending(ctx context.Context, s *subscription.UserSubscription) error
	FindPendingByIDAndUser(ctx context.Context, id, userID int64) (*subscription.UserSubscription, error)
	HasPaymentWithTx(ctx context.Context, tx pgx.Tx, gatewayPaymentID string) (bool, error)
	InsertPaymentWithTx(ctx context.Context, tx pgx.Tx, p *subscription.Payment) error
	ActivateWithTx(ctx context.Context, tx pgx.Tx, subscriptionID int64) error
	UpsertAccessWithTx(ctx context.Context, tx pgx.Tx, a *subscription.Access) error
	FindAccess(ctx context.Context, userID int64) (*subscription.Access, error)
	LatestByUser(ctx context.Context, userID int64) (*subscription.Detail, error)
	SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error)
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
	tx       TxManager
	events   Publisher
	currency string
	logger   *zap.Logger
}

func NewService(repo Repository, tx TxManager, events Publisher, currency string, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		events:   events,
		currency: currency,
		logger:   logger,
	}
}

// Plans lists the plans currently offered.
func (s *Service) Plans(ctx context.Context) ([]subscription.Plan, error) {
	return s.repo.ListActivePlans(ctx)
}

// Create opens a pending subscription priced at base price times months, with
// the term starting today. A user holding an active unexpired subscription is
// rejected, and any existing pending row for the user is reused instead of
// duplicated, even when the plan or term differs.
func (s *Service) Create(ctx context.Context, userID int64, req *subscription.CreateRequest) (*subscription.CreateResponse, error) {
	active, err := s.repo.HasActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, xerrors.ErrAlreadySubscribed
	}

	plan, err := s.repo.FindPlanByKey(ctx, req.Plan)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.ErrInvalidPlan
	}
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.FindPendingByUser(ctx, userID)
	if err == nil {
		return &subscription.CreateResponse{
			SubscriptionID: pending.ID,
			Amount:         pending.AmountPaid,
			Reused:         true,
		}, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	start := time.Now()
	sub := &subscription.UserSubscription{
		UserID:     userID,
		PlanID:     plan.ID,
		Months:     req.Months,
		AmountPaid: plan.BasePrice * float64(req.Months),
		StartDate:  start,
		EndDate:    start.AddDate(0, req.Months, 0),
		Status:     subscription.StatusPending,
	}

	if err := s.repo.CreatePending(ctx, sub); err != nil {
		s.logger.Error("failed to create subscription",
			zap.Int64("user_id", userID),
			zap.String("plan", req.Plan),
			zap.Error(err),
		)
		return nil, err
	}

	return &subscription.CreateResponse{
		SubscriptionID: sub.ID,
		Amount:         sub.AmountPaid,
	}, nil
}

// Activate finalizes a pending subscription after payment. The payment row,
// the status flip and the entitlement grant commit together; replaying the
// same gateway payment id is a no-op flagged as duplicate.
func (s *Service) Activate(ctx context.Context, userID int64, req *subscription.ActivateRequest) (*subscription.ActivateResponse, error) {
	sub, err := s.repo.FindPendingByIDAndUser(ctx, req.SubscriptionID, userID)
	if err != nil {
		return nil, err
	}

	duplicate := false
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		exists, err := s.repo.HasPaymentWithTx(ctx, tx, req.GatewayPaymentID)
		if err != nil {
			return err
		}
		if exists {
			duplicate = true
			return nil
		}

		// the payment row records the amount the gateway callback reported,
		// which can differ from the quoted subscription price
		payment := &subscription.Payment{
			UserSubscriptionID: sub.ID,
			GatewayPaymentID:   req.GatewayPaymentID,
			GatewayOrderID:     req.GatewayOrderID,
			Amount:             req.Amount,
			Currency:           s.currency,
			Status:             "success",
		}
		if err := s.repo.InsertPaymentWithTx(ctx, tx, payment); err != nil {
			return err
		}

		if err := s.repo.ActivateWithTx(ctx, tx, sub.ID); err != nil {
			return err
		}

		return s.repo.UpsertAccessWithTx(ctx, tx, &subscription.Access{
			UserID:         userID,
			SubscriptionID: sub.ID,
			ExpiresAt:      sub.EndDate,
			Status:         "active",
		})
	})
	if err != nil {
		s.logger.Error("failed to activate subscription",
			zap.Int64("subscription_id", req.SubscriptionID),
			zap.Error(err),
		)
		return nil, err
	}

	if duplicate {
		return &subscription.ActivateResponse{Success: true, Duplicate: true}, nil
	}

	s.logger.Info("subscription activated",
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("user_id", userID),
	)

	s.events.Publish(ws.EventSubscriptionActivated, map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         userID,
		"amount":          sub.AmountPaid,
	})

	return &subscription.ActivateResponse{Success: true}, nil
}

// CheckAccess reports whether the user holds unexpired subscription
// entitlement, with its expiry when active. Expiry is day-granular: access
// lasts through the whole expiry day.
func (s *Service) CheckAccess(ctx context.Context, userID int64) (*subscription.AccessStatus, error) {
	access, err := s.repo.FindAccess(ctx, userID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return &subscription.AccessStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if access.Status != "active" || access.ExpiresAt.Before(today) {
		return &subscription.AccessStatus{}, nil
	}

	expires := access.ExpiresAt
	return &subscription.AccessStatus{Active: true, ExpiresAt: &expires}, nil
}

// Current retrieves the user's most recent subscription with its plan.
func (s *Service) Current(ctx context.Context, userID int64) (*subscription.Detail, error) {
	return s.repo.LatestByUser(ctx, userID)
}

// Payments lists the user's successful subscription payments.
func (s *Service) Payments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error) {
	return s.repo.SuccessfulPayments(ctx, userID)
}
