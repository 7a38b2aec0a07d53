package router

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	// Admin routes - require authentication and platform staff
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.StaffOnly)

	admin.GET("/accounts", adminHandler.ListAccounts)
	admin.POST("/listings/:id/approve", adminHandler.ApproveListing)

	// Account management is for administrators only
	admin.PATCH("/accounts/:id/status", adminHandler.ToggleAccountStatus, adminMiddleware.AdminOnly)
	admin.POST("/staff", adminHandler.AddStaff, adminMiddleware.AdminOnly)
}
