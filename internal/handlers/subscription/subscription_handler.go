// internal/handlers/subscription/subscription_handler.go
package subscription

import (
	"net/http"
	"time"

	"bookstore-service/internal/domain/library"
	"bookstore-service/internal/domain/subscription"
	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	subUsecase "bookstore-service/internal/service/subscription"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subService *subUsecase.Service
}

func NewSubscriptionHandler(subService *subUsecase.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Plans lists the plans currently offered (public endpoint)
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	plans, err := h.subService.Plans(c.Request.Context())
	if err != nil {
		response.ErrorFrom(c, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plans)
}

// Create opens a pending subscription (requires auth)
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req subscription.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.subService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.ErrorFrom(c, "failed to create subscription", err)
		return
	}

	response.Success(c, http.StatusCreated, "subscription created", resp)
}

// Activate finalizes a pending subscription after payment (requires auth)
func (h *SubscriptionHandler) Activate(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req subscription.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.subService.Activate(c.Request.Context(), userID, &req)
	if err != nil {
		response.ErrorFrom(c, "failed to activate subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription activated", resp)
}

// Access reports the user's entitlement status (requires auth)
func (h *SubscriptionHandler) Access(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	status, err := h.subService.CheckAccess(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to check access", err)
		return
	}

	resp := library.AccessResponse{Access: status.Active}
	if status.ExpiresAt != nil {
		resp.ExpiresAt = status.ExpiresAt.Format(time.RFC3339)
	}

	response.Success(c, http.StatusOK, "access checked", resp)
}

// Payments lists the user's subscription payments (requires auth)
func (h *SubscriptionHandler) Payments(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	payments, err := h.subService.Payments(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load payments", err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", payments)
}

// Current returns the user's most recent subscription (requires auth)
func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	detail, err := h.subService.Current(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription retrieved", detail)
}
