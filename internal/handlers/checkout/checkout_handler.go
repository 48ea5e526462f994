// internal/handlers/checkout/checkout_handler.go
package checkout

import (
	"net/http"

	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	orderUsecase "bookstore-service/internal/service/order"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	orderService *orderUsecase.Service
}

func NewCheckoutHandler(orderService *orderUsecase.Service) *CheckoutHandler {
	return &CheckoutHandler{orderService: orderService}
}

// Checkout prices the cart and opens a pending order (requires auth)
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	resp, err := h.orderService.Checkout(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "checkout failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "order created", resp)
}
