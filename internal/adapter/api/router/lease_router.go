package router

import (
	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupLeaseRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	leaseHandler := handler.GetLeaseHandler()

	leaseGroup := e.Group("/v1/leases")
	leaseGroup.Use(authMiddleware.Authenticate)

	leaseGroup.GET("", leaseHandler.ListLeases)
	leaseGroup.POST("", leaseHandler.CreateLease)
	leaseGroup.GET("/:id", leaseHandler.GetLease)
	leaseGroup.POST("/:id/sign", leaseHandler.SignLease)
}
