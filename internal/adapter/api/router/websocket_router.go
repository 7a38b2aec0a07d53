package router

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
)

// SetupWebSocketRouter sets up WebSocket routes. The token may arrive as a
// "token" query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/ws", wsHandler.HandleWebSocket, authMiddleware.Authenticate)
}
