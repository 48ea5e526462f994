// internal/domain/subscription/entity.go
package subscription

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

type Plan struct {
	ID        int64   `json:"id"`
	PlanKey   string  `json:"plan_key"`
	Title     string  `json:"title"`
	BasePrice float64 `json:"base_price"` // per month
	Status    string  `json:"status"`
}

type UserSubscription struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PlanID     int64     `json:"plan_id"`
	Months     int       `json:"months"`
	AmountPaid float64   `json:"amount_paid"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type Payment struct {
	ID                 int64     `json:"id"`
	UserSubscriptionID int64     `json:"-"`
	GatewayPaymentID   string    `json:"gateway_payment_id"`
	GatewayOrderID     string    `json:"gateway_order_id"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// Access is the sole authority for subscription-based content entitlement.
// One row per user; a new subscription's expiry replaces the old one.
type Access struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	SubscriptionID int64     `json:"subscription_id"`
	ExpiresAt      time.Time `json:"expires_at"`
	Status         string    `json:"status"`
}

// Detail is a user's subscription joined with its plan for the account view.
type Detail struct {
	SubscriptionID int64     `json:"subscription_id"`
	Title          string    `json:"title"`
	PlanKey        string    `json:"plan_key"`
	Months         int       `json:"months"`
	AmountPaid     float64   `json:"amount_paid"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         Status    `json:"status"`
}

// HistoryEntry merges product and subscription payments for the unified
// payment-history view.
type HistoryEntry struct {
	RefID       int64          `json:"ref_id"`
	PaymentType string         `json:"payment_type"` // product, subscription
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Status      string         `json:"status"`
	Date        time.Time      `json:"date"`
	Title       string         `json:"title"`
	PaymentID   sql.NullString `json:"payment_id,omitempty"`
}
