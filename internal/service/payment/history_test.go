// internal/service/payment/history_test.go
package payment

import (
	"context"
	"testing"
	"time"

	"bookstore-service/internal/domain/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	entries []subscription.HistoryEntry
}

func (f *fakePayments) SuccessfulPayments(_ context.Context, _ int64) ([]subscription.HistoryEntry, error) {
	return f.entries, nil
}

func TestHistoryMergesAndSortsByDate(t *testing.T) {
	now := time.Now()
	orders := &fakePayments{entries: []subscription.HistoryEntry{
		{RefID: 1, PaymentType: "product", Date: now.Add(-48 * time.Hour)},
		{RefID: 2, PaymentType: "product", Date: now},
	}}
	subs := &fakePayments{entries: []subscription.HistoryEntry{
		{RefID: 3, PaymentType: "subscription", Date: now.Add(-time.Hour)},
	}}

	svc := NewService(orders, subs)
	entries, err := svc.History(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, int64(2), entries[0].RefID)
	assert.Equal(t, int64(3), entries[1].RefID)
	assert.Equal(t, int64(1), entries[2].RefID)
}

func TestHistoryEmpty(t *testing.T) {
	svc := NewService(&fakePayments{}, &fakePayments{})

	entries, err := svc.History(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
