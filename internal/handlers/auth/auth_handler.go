// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"bookstore-service/internal/domain/user"
	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	authUsecase "bookstore-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.Service
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration (public endpoint)
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	u, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.ErrorFrom(c, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", u)
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	loginResp, err := h.authService.Login(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		response.ErrorFrom(c, "login failed", err)
		return
	}

	h.logger.Info("user logged in",
		zap.Int64("user_id", loginResp.User.ID),
		zap.String("email", loginResp.User.Email),
	)

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// Me returns the authenticated user (requires auth)
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	u, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load user", err)
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", u)
}

// Profile returns the user with their shipping address (requires auth)
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	profile, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", profile)
}

// SaveAddress stores the user's shipping address (requires auth)
func (h *AuthHandler) SaveAddress(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req user.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.SaveAddress(c.Request.Context(), userID, &req); err != nil {
		response.ErrorFrom(c, "failed to save address", err)
		return
	}

	response.Success(c, http.StatusOK, "address saved", nil)
}
