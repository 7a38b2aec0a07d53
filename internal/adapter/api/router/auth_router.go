package router

import (
	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
	"rentory/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	authGroup := e.Group("/v1/auth")
	authGroup.POST("/login", authHandler.Login, middleware.AuthRateLimit(limiter))

	e.GET("/v1/me", authHandler.Me, authMiddleware.Authenticate)
}
