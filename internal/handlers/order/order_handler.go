// internal/handlers/order/order_handler.go
package order

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	orderUsecase "bookstore-service/internal/service/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *orderUsecase.Service
}

func NewOrderHandler(orderService *orderUsecase.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the user's orders (requires auth)
func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", orders)
}

// History returns the user's paid orders grouped by date (requires auth)
func (h *OrderHandler) History(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	summaries, err := h.orderService.PurchaseHistory(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load purchase history", err)
		return
	}

	response.Success(c, http.StatusOK, "purchase history retrieved", summaries)
}

// Detail returns one order's line items (requires auth)
func (h *OrderHandler) Detail(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid order id", err)
		return
	}

	rows, err := h.orderService.Detail(c.Request.Context(), userID, orderID)
	if err != nil {
		response.ErrorFrom(c, "failed to load order", err)
		return
	}

	response.Success(c, http.StatusOK, "order retrieved", rows)
}
