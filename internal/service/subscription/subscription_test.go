// internal/service/subscription/subscription_test.go
package subscription

import (
	"context"
	"testing"
	"time"

	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubRepo struct {
	plans       map[string]*subscription.Plan
	active      bool
	pending     map[int64]*subscription.UserSubscription
	payments    map[string]bool
	lastPayment *subscription.Payment
	access      *subscription.Access
	nextID      int64
	activatedID int64
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		plans:    map[string]*subscription.Plan{},
		pending:  map[int64]*subscription.UserSubscription{},
		payments: map[string]bool{},
		nextID:   1,
	}
}

func (f *fakeSubRepo) ListActivePlans(_ context.Context) ([]subscription.Plan, error) {
	return nil, nil
}

func (f *fakeSubRepo) FindPlanByKey(_ context.Context, planKey string) (*subscription.Plan, error) {
	p, ok := f.plans[planKey]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

func (f *fakeSubRepo) HasActiveSubscription(_ context.Context, _ int64) (bool, error) {
	return f.active, nil
}

func (f *fakeSubRepo) FindPendingByUser(_ context.Context, userID int64) (*subscription.UserSubscription, error) {
	for _, s := range f.pending {
		if s.UserID == userID && s.Status == subscription.StatusPending {
			return s, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeSubRepo) CreatePending(_ context.Context, s *subscription.UserSubscription) error {
	s.ID = f.nextID
	f.nextID++
	clone := *s
	f.pending[s.ID] = &clone
	return nil
}

func (f *fakeSubRepo) FindPendingByIDAndUser(_ context.Context, id, userID int64) (*subscription.UserSubscription, error) {
	s, ok := f.pending[id]
	if !ok || s.UserID != userID || s.Status != subscription.StatusPending {
		return nil, xerrors.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSubRepo) HasPaymentWithTx(_ context.Context, _ pgx.Tx, gatewayPaymentID string) (bool, error) {
	return f.payments[gatewayPaymentID], nil
}

func (f *fakeSubRepo) InsertPaymentWithTx(_ context.Context, _ pgx.Tx, p *subscription.Payment) error {
	f.payments[p.GatewayPaymentID] = true
	clone := *p
	f.lastPayment = &clone
	return nil
}

func (f *fakeSubRepo) ActivateWithTx(_ context.Context, _ pgx.Tx, subscriptionID int64) error {
	s, ok := f.pending[subscriptionID]
	if !ok {
		return xerrors.ErrNotFound
	}
	s.Status = subscription.StatusActive
	f.activatedID = subscriptionID
	return nil
}

func (f *fakeSubRepo) UpsertAccessWithTx(_ context.Context, _ pgx.Tx, a *subscription.Access) error {
	clone := *a
	f.access = &clone
	return nil
}

func (f *fakeSubRepo) FindAccess(_ context.Context, _ int64) (*subscription.Access, error) {
	if f.access == nil {
		return nil, xerrors.ErrNotFound
	}
	return f.access, nil
}

func (f *fakeSubRepo) LatestByUser(_ context.Context, _ int64) (*subscription.Detail, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeSubRepo) SuccessfulPayments(_ context.Context, _ int64) ([]subscription.HistoryEntry, error) {
	return nil, nil
}

type fakeTx struct{}

func (fakeTx) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error { return fn(nil) }

type fakeEvents struct {
	types []string
}

func (f *fakeEvents) Publish(eventType string, _ interface{}) {
	f.types = append(f.types, eventType)
}

func newTestService(repo *fakeSubRepo) (*Service, *fakeEvents) {
	events := &fakeEvents{}
	return NewService(repo, fakeTx{}, events, "INR", zap.NewNop()), events
}

func TestCreatePricesByMonths(t *testing.T) {
	repo := newFakeSubRepo()
	repo.plans["monthly"] = &subscription.Plan{ID: 1, PlanKey: "monthly", BasePrice: 100}
	svc, _ := newTestService(repo)

	resp, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "monthly", Months: 3})
	require.NoError(t, err)

	assert.Equal(t, 300.0, resp.Amount)
	assert.False(t, resp.Reused)

	created := repo.pending[resp.SubscriptionID]
	require.NotNil(t, created)
	assert.Equal(t, subscription.StatusPending, created.Status)

	wantEnd := created.StartDate.AddDate(0, 3, 0)
	assert.WithinDuration(t, wantEnd, created.EndDate, time.Second)
}

func TestCreateRejectsActiveSubscriber(t *testing.T) {
	repo := newFakeSubRepo()
	repo.plans["monthly"] = &subscription.Plan{ID: 1, PlanKey: "monthly", BasePrice: 100}
	repo.active = true
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "monthly", Months: 1})
	assert.ErrorIs(t, err, xerrors.ErrAlreadySubscribed)
}

func TestCreateRejectsUnknownPlan(t *testing.T) {
	svc, _ := newTestService(newFakeSubRepo())

	_, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "gold", Months: 1})
	assert.ErrorIs(t, err, xerrors.ErrInvalidPlan)
}

func TestCreateReusesPendingSubscription(t *testing.T) {
	repo := newFakeSubRepo()
	repo.plans["monthly"] = &subscription.Plan{ID: 1, PlanKey: "monthly", BasePrice: 100}
	svc, _ := newTestService(repo)

	first, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "monthly", Months: 2})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "monthly", Months: 2})
	require.NoError(t, err)

	assert.Equal(t, first.SubscriptionID, second.SubscriptionID)
	assert.True(t, second.Reused)
	assert.Len(t, repo.pending, 1)
}

func TestCreateReusesPendingAcrossPlans(t *testing.T) {
	repo := newFakeSubRepo()
	repo.plans["monthly"] = &subscription.Plan{ID: 1, PlanKey: "monthly", BasePrice: 100}
	repo.plans["annual"] = &subscription.Plan{ID: 2, PlanKey: "annual", BasePrice: 80}
	svc, _ := newTestService(repo)

	first, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "monthly", Months: 1})
	require.NoError(t, err)

	// switching plan and term at checkout must not open a second pending
	// subscription, otherwise both could be activated
	second, err := svc.Create(context.Background(), 7, &subscription.CreateRequest{Plan: "annual", Months: 12})
	require.NoError(t, err)

	assert.Equal(t, first.SubscriptionID, second.SubscriptionID)
	assert.True(t, second.Reused)
	assert.Len(t, repo.pending, 1)
}

func TestActivateGrantsAccess(t *testing.T) {
	repo := newFakeSubRepo()
	end := time.Now().AddDate(0, 1, 0)
	repo.pending[1] = &subscription.UserSubscription{
		ID: 1, UserID: 7, PlanID: 1, Months: 1, AmountPaid: 100,
		StartDate: time.Now(), EndDate: end, Status: subscription.StatusPending,
	}
	svc, events := newTestService(repo)

	resp, err := svc.Activate(context.Background(), 7, &subscription.ActivateRequest{
		SubscriptionID:   1,
		GatewayPaymentID: "pay_abc",
		Amount:           100,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.Duplicate)
	assert.Equal(t, int64(1), repo.activatedID)
	require.NotNil(t, repo.access)
	assert.Equal(t, int64(7), repo.access.UserID)
	assert.WithinDuration(t, end, repo.access.ExpiresAt, time.Second)
	assert.Contains(t, events.types, "subscription.activated")
}

func TestActivateRecordsCallbackAmount(t *testing.T) {
	repo := newFakeSubRepo()
	repo.pending[1] = &subscription.UserSubscription{
		ID: 1, UserID: 7, AmountPaid: 300, Status: subscription.StatusPending,
		EndDate: time.Now().AddDate(0, 3, 0),
	}
	svc, _ := newTestService(repo)

	_, err := svc.Activate(context.Background(), 7, &subscription.ActivateRequest{
		SubscriptionID:   1,
		GatewayPaymentID: "pay_abc",
		Amount:           250,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastPayment)
	assert.Equal(t, 250.0, repo.lastPayment.Amount)
	assert.Equal(t, "success", repo.lastPayment.Status)
}

func TestActivateDuplicatePaymentIsNoOp(t *testing.T) {
	repo := newFakeSubRepo()
	repo.pending[1] = &subscription.UserSubscription{
		ID: 1, UserID: 7, Status: subscription.StatusPending,
		EndDate: time.Now().AddDate(0, 1, 0),
	}
	repo.payments["pay_abc"] = true
	svc, events := newTestService(repo)

	resp, err := svc.Activate(context.Background(), 7, &subscription.ActivateRequest{
		SubscriptionID:   1,
		GatewayPaymentID: "pay_abc",
	})
	require.NoError(t, err)

	assert.True(t, resp.Duplicate)
	assert.Zero(t, repo.activatedID)
	assert.Nil(t, repo.access)
	assert.Empty(t, events.types)
}

func TestActivateRejectsForeignSubscription(t *testing.T) {
	repo := newFakeSubRepo()
	repo.pending[1] = &subscription.UserSubscription{ID: 1, UserID: 7, Status: subscription.StatusPending}
	svc, _ := newTestService(repo)

	_, err := svc.Activate(context.Background(), 99, &subscription.ActivateRequest{
		SubscriptionID:   1,
		GatewayPaymentID: "pay_abc",
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCheckAccessExpired(t *testing.T) {
	repo := newFakeSubRepo()
	repo.access = &subscription.Access{
		UserID:    7,
		ExpiresAt: time.Now().AddDate(0, 0, -1),
		Status:    "active",
	}
	svc, _ := newTestService(repo)

	status, err := svc.CheckAccess(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, status.Active)
}

func TestCheckAccessValidThroughExpiryDay(t *testing.T) {
	repo := newFakeSubRepo()
	now := time.Now()
	// expiry stamped at midnight today stays valid for the rest of the day
	repo.access = &subscription.Access{
		UserID:    7,
		ExpiresAt: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Status:    "active",
	}
	svc, _ := newTestService(repo)

	status, err := svc.CheckAccess(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.Active)
}

func TestCheckAccessActive(t *testing.T) {
	repo := newFakeSubRepo()
	expires := time.Now().Add(48 * time.Hour)
	repo.access = &subscription.Access{
		UserID:    7,
		ExpiresAt: expires,
		Status:    "active",
	}
	svc, _ := newTestService(repo)

	status, err := svc.CheckAccess(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.Active)
	require.NotNil(t, status.ExpiresAt)
	assert.WithinDuration(t, expires, *status.ExpiresAt, time.Second)
}

func TestCheckAccessNone(t *testing.T) {
	svc, _ := newTestService(newFakeSubRepo())

	status, err := svc.CheckAccess(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.Nil(t, status.ExpiresAt)
}
