// internal/service/payment/history.go
package payment

import (
	"context"
	"sort"

	"bookstore-service/internal/domain/subscription"
)

// ProductPayments lists the user's successful order payments.
type ProductPayments interface {
	SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error)
}

// SubscriptionPayments lists the user's successful subscription payments.
type SubscriptionPayments interface {
	SuccessfulPayments(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error)
}

// Service merges product and subscription payments into one history view.
type Service struct {
	orders        ProductPayments
	subscriptions SubscriptionPayments
}

func NewService(orders ProductPayments, subscriptions SubscriptionPayments) *Service {
	return &Service{orders: orders, subscriptions: subscriptions}
}

// History returns every successful payment of the user, most recent first.
func (s *Service) History(ctx context.Context, userID int64) ([]subscription.HistoryEntry, error) {
	products, err := s.orders.SuccessfulPayments(ctx, userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscriptions.SuccessfulPayments(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := append(products, subs...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}
