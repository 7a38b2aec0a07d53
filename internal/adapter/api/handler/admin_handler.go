package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/domain/entity"
	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type addStaffRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	Position string `json:"position" validate:"required,oneof=COMPLIANCE_OFFICER OPERATIONS_MANAGER FINANCIAL_CONTROLLER SUPPORT_LEAD"`
}

func (h *AdminHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.adminUseCase.ListAccounts(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, accounts)
}

// ToggleAccountStatus flips an account between ACTIVE and SUSPENDED.
func (h *AdminHandler) ToggleAccountStatus(c echo.Context) error {
	accountID := c.Param("id")
	if accountID == "" {
		return response.Error(c, errors.BadRequest("Account ID is required", nil))
	}

	account, err := h.adminUseCase.ToggleAccountStatus(c.Request().Context(), currentUserID(c), accountID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, account)
}

func (h *AdminHandler) AddStaff(c echo.Context) error {
	var req addStaffRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	created, err := h.adminUseCase.AddStaff(c.Request().Context(), currentUserID(c), usecase.AddStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: entity.StaffPosition(req.Position),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}

func (h *AdminHandler) ApproveListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	listing, err := h.adminUseCase.ApproveListing(c.Request().Context(), currentUserID(c), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
