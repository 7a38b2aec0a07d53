package router

import (
	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupListingRouter covers the catalogue together with the per-party
// history and favorites lists built on it.
func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()
	historyHandler := handler.GetHistoryHandler()
	favoriteHandler := handler.GetFavoriteHandler()

	listingGroup := e.Group("/v1/listings")
	listingGroup.Use(authMiddleware.Authenticate)
	listingGroup.GET("", listingHandler.ListListings)
	listingGroup.GET("/:id", listingHandler.GetListing) // records a view

	historyGroup := e.Group("/v1/history")
	historyGroup.Use(authMiddleware.Authenticate)
	historyGroup.GET("", historyHandler.GetHistory)
	historyGroup.POST("/:listingId", historyHandler.RecordView)

	favoriteGroup := e.Group("/v1/favorites")
	favoriteGroup.Use(authMiddleware.Authenticate)
	favoriteGroup.GET("", favoriteHandler.ListFavorites)
	favoriteGroup.POST("/:listingId", favoriteHandler.ToggleFavorite) // toggle
}
