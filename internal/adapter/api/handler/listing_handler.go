package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListListings(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

// GetListing also records the view in the caller's history.
func (h *ListingHandler) GetListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), currentUserID(c), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
