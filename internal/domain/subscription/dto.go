// internal/domain/subscription/dto.go
package subscription

import "time"

type CreateRequest struct {
	Plan   string `json:"plan" binding:"required"`
	Months int    `json:"months" binding:"required,min=1"`
}

type CreateResponse struct {
	SubscriptionID int64   `json:"subscription_id"`
	Amount         float64 `json:"amount"`
	Reused         bool    `json:"reused"`
}

type ActivateRequest struct {
	SubscriptionID   int64   `json:"subscription_id" binding:"required"`
	GatewayPaymentID string  `json:"payment_id" binding:"required"`
	GatewayOrderID   string  `json:"order_id"`
	Amount           float64 `json:"amount"`
}

type ActivateResponse struct {
	Success   bool `json:"success"`
	Duplicate bool `json:"duplicate,omitempty"`
}

type AccessStatus struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
