// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"

	"bookstore-service/internal/domain/order"
	"bookstore-service/internal/middleware"
	xerrors "bookstore-service/internal/pkg/errors"
	"bookstore-service/internal/pkg/ratelimit"
	"bookstore-service/internal/pkg/response"
	orderUsecase "bookstore-service/internal/service/order"
	paymentUsecase "bookstore-service/internal/service/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	orderService   *orderUsecase.Service
	historyService *paymentUsecase.Service
	limiter        *ratelimit.RateLimiter
	logger         *zap.Logger
}

func NewPaymentHandler(
	orderService *orderUsecase.Service,
	historyService *paymentUsecase.Service,
	limiter *ratelimit.RateLimiter,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		orderService:   orderService,
		historyService: historyService,
		limiter:        limiter,
		logger:         logger,
	}
}

// CreateOrder registers a pending order with the payment gateway
// (requires auth)
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req order.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	gwOrder, err := h.orderService.CreatePaymentOrder(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		response.ErrorFrom(c, "failed to create payment order", err)
		return
	}

	response.Success(c, http.StatusOK, "payment order created", gwOrder)
}

// Verify validates the gateway callback and finalizes the order
// (requires auth)
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	allowed, err := h.limiter.CheckPaymentCallback(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("payment rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		response.ErrorFrom(c, "too many verification attempts", xerrors.ErrRateLimited)
		return
	}

	var req order.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.orderService.VerifyPayment(c.Request.Context(), userID, &req); err != nil {
		response.ErrorFrom(c, "payment verification failed", err)
		return
	}

	response.Success(c, http.StatusOK, "payment verified", gin.H{"success": true})
}

// History returns every successful payment of the user (requires auth)
func (h *PaymentHandler) History(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	entries, err := h.historyService.History(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load payment history", err)
		return
	}

	response.Success(c, http.StatusOK, "payment history retrieved", entries)
}
