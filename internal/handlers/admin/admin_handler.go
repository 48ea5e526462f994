// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/pkg/response"
	orderUsecase "bookstore-service/internal/service/order"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orderService *orderUsecase.Service
}

func NewAdminHandler(orderService *orderUsecase.Service) *AdminHandler {
	return &AdminHandler{orderService: orderService}
}

// Orders lists all orders with their owners (admin only)
func (h *AdminHandler) Orders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.AdminList(c.Request.Context(), limit, offset)
	if err != nil {
		response.ErrorFrom(c, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", orders)
}
