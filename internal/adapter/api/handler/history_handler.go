package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
)

type HistoryHandler struct {
	historyUseCase *usecase.HistoryUseCase
}

func NewHistoryHandler(historyUseCase *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{
		historyUseCase: historyUseCase,
	}
}

func (h *HistoryHandler) GetHistory(c echo.Context) error {
	ids, err := h.historyUseCase.GetHistory(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"listing_ids": ids})
}

func (h *HistoryHandler) RecordView(c echo.Context) error {
	listingID := c.Param("listingId")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	ids, err := h.historyUseCase.RecordView(c.Request().Context(), currentUserID(c), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"listing_ids": ids})
}
