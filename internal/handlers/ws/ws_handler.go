// internal/handlers/ws/ws_handler.go
package ws

import (
	"net/http"

	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	"bookstore-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	auth   *middleware.AuthMiddleware
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, auth *middleware.AuthMiddleware, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		auth:   auth,
		logger: logger,
	}
}

// HandleAdmin upgrades an admin connection to the event stream. Token comes
// from the query string since browsers cannot set headers on websocket
// requests.
func (h *WebSocketHandler) HandleAdmin(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "missing authentication token", nil)
		return
	}

	claims, err := h.auth.VerifyToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "authentication failed", err)
		return
	}

	if !claims.IsAdmin() {
		response.Forbidden(c, "admin access required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID)
	client.Register()

	h.logger.Info("admin dashboard connected", zap.Int64("user_id", claims.UserID))
}
