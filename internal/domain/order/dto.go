// internal/domain/order/dto.go
package order

type CheckoutResponse struct {
	OrderID  int64   `json:"order_id"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type CreatePaymentOrderRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature        string `json:"razorpay_signature" binding:"required"`
	OrderID          int64  `json:"order_id" binding:"required"`
}
