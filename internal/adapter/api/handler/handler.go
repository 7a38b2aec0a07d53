package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/usecase"
)

var (
	authHandler     *AuthHandler
	listingHandler  *ListingHandler
	historyHandler  *HistoryHandler
	favoriteHandler *FavoriteHandler
	leaseHandler    *LeaseHandler
	adminHandler    *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	listingUseCase *usecase.ListingUseCase,
	historyUseCase *usecase.HistoryUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	leaseUseCase *usecase.LeaseUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	historyHandler = NewHistoryHandler(historyUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	leaseHandler = NewLeaseHandler(leaseUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetHistoryHandler() *HistoryHandler {
	return historyHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetLeaseHandler() *LeaseHandler {
	return leaseHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func currentUserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
