// internal/handlers/cart/cart_handler.go
package cart

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/domain/cart"
	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	cartUsecase "bookstore-service/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService *cartUsecase.Service
}

func NewCartHandler(cartService *cartUsecase.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Add puts a product into the cart (requires auth)
func (h *CartHandler) Add(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.cartService.Add(c.Request.Context(), userID, &req); err != nil {
		response.ErrorFrom(c, "failed to add to cart", err)
		return
	}

	response.Success(c, http.StatusOK, "added to cart", nil)
}

// List returns the cart with resolved prices (requires auth)
func (h *CartHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	items, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load cart", err)
		return
	}

	response.Success(c, http.StatusOK, "cart retrieved", items)
}

// UpdateQuantity changes a paperback line's quantity (requires auth)
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid cart item id", err)
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.cartService.UpdateQuantity(c.Request.Context(), userID, lineID, req.Quantity); err != nil {
		response.ErrorFrom(c, "failed to update quantity", err)
		return
	}

	response.Success(c, http.StatusOK, "quantity updated", nil)
}

// Remove deletes a cart line (requires auth)
func (h *CartHandler) Remove(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid cart item id", err)
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, lineID); err != nil {
		response.ErrorFrom(c, "failed to remove item", err)
		return
	}

	response.Success(c, http.StatusOK, "item removed", nil)
}

// Count returns the cart badge count (requires auth)
func (h *CartHandler) Count(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	count, err := h.cartService.Count(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to count cart", err)
		return
	}

	response.Success(c, http.StatusOK, "cart counted", cart.CountResponse{Count: count})
}
