// internal/domain/order/entity.go
package order

import (
	"database/sql"
	"time"

	"bookstore-service/internal/domain/cart"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type Order struct {
	ID               int64          `json:"id"`
	UserID           int64          `json:"user_id"`
	TotalAmount      float64        `json:"total_amount"`
	Status           Status         `json:"status"`
	PaymentStatus    PaymentStatus  `json:"payment_status"`
	GatewayOrderID   sql.NullString `json:"gateway_order_id,omitempty"`
	GatewayPaymentID sql.NullString `json:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Item is a financial snapshot of a cart line; immutable once written.
type Item struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"order_id"`
	ProductID int64       `json:"product_id"`
	Format    cart.Format `json:"format"`
	Price     float64     `json:"price"`
	Quantity  int         `json:"quantity"`
}

// DetailRow is an order item joined with its product for the order view.
type DetailRow struct {
	OrderID       int64          `json:"order_id"`
	TotalAmount   float64        `json:"total_amount"`
	Status        Status         `json:"status"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
	ProductID     int64          `json:"product_id"`
	Format        cart.Format    `json:"format"`
	Price         float64        `json:"price"`
	Quantity      int            `json:"quantity"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	MainImage     sql.NullString `json:"main_image,omitempty"`
}

// DateSummary groups a paid order for the purchase-history view.
type DateSummary struct {
	OrderID     int64     `json:"order_id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	OrderDate   time.Time `json:"order_date"`
	ItemsCount  int       `json:"items_count"`
}

// AdminRow is the admin listing of an order with its owner.
type AdminRow struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	UserName      string        `json:"user_name"`
	UserEmail     string        `json:"user_email"`
	TotalAmount   float64       `json:"total_amount"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
