// internal/handlers/wishlist/wishlist_handler.go
package wishlist

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	wishlistUsecase "bookstore-service/internal/service/wishlist"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlistService *wishlistUsecase.Service
}

func NewWishlistHandler(wishlistService *wishlistUsecase.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// Toggle flips a product's wishlist membership (requires auth)
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	resp, err := h.wishlistService.Toggle(c.Request.Context(), userID, productID)
	if err != nil {
		response.ErrorFrom(c, "failed to toggle wishlist", err)
		return
	}

	response.Success(c, http.StatusOK, "wishlist updated", resp)
}

// List returns the user's wishlist (requires auth)
func (h *WishlistHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	items, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load wishlist", err)
		return
	}

	response.Success(c, http.StatusOK, "wishlist retrieved", items)
}
