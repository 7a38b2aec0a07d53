package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	ids, err := h.favoriteUseCase.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"listing_ids": ids})
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	listingID := c.Param("listingId")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	result, err := h.favoriteUseCase.Toggle(c.Request().Context(), currentUserID(c), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
