package router

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
	"rentory/internal/infrastructure/ratelimit"
)

// Setup registers every route. Handlers built through handler.Setup are
// looked up here; the chat and websocket handlers are passed in.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	limiter *ratelimit.RateLimiter,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupListingRouter(e, authMiddleware)
	SetupLeaseRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupChatRouter(e, chatHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler, authMiddleware)
}
