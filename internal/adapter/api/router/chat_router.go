package router

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all conversation routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.GET("", chatHandler.GetInbox)               // GET /v1/chats - inbox with unread counts
	chatGroup.GET("/derive", chatHandler.DeriveSessionID) // GET /v1/chats/derive?listing_id=&party_id=
	chatGroup.GET("/:id", chatHandler.GetSession)
	chatGroup.POST("/:id/messages", chatHandler.SendMessage) // creates the conversation on first send

	e.POST("/v1/listings/:id/chat", chatHandler.StartListingConversation, authMiddleware.Authenticate)
	e.POST("/v1/support/chat", chatHandler.StartSupportConversation, authMiddleware.Authenticate)
}
