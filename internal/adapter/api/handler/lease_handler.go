package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
)

type LeaseHandler struct {
	leaseUseCase *usecase.LeaseUseCase
}

func NewLeaseHandler(leaseUseCase *usecase.LeaseUseCase) *LeaseHandler {
	return &LeaseHandler{
		leaseUseCase: leaseUseCase,
	}
}

type createLeaseRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	TenantID  string `json:"tenant_id" validate:"required"`
	Content   string `json:"content" validate:"required,notblank"`
}

func (h *LeaseHandler) CreateLease(c echo.Context) error {
	var req createLeaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	lease, err := h.leaseUseCase.CreateLease(c.Request().Context(), currentUserID(c), usecase.CreateLeaseInput{
		ListingID: req.ListingID,
		TenantID:  req.TenantID,
		Content:   req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, lease)
}

func (h *LeaseHandler) ListLeases(c echo.Context) error {
	leases, err := h.leaseUseCase.ListLeases(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, leases)
}

func (h *LeaseHandler) GetLease(c echo.Context) error {
	leaseID := c.Param("id")
	if leaseID == "" {
		return response.Error(c, errors.BadRequest("Lease ID is required", nil))
	}

	lease, err := h.leaseUseCase.GetLease(c.Request().Context(), currentUserID(c), leaseID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lease)
}

// SignLease answers 200 with the stored lease whether or not the signature
// advanced it; callers compare the status to tell.
func (h *LeaseHandler) SignLease(c echo.Context) error {
	leaseID := c.Param("id")
	if leaseID == "" {
		return response.Error(c, errors.BadRequest("Lease ID is required", nil))
	}

	lease, err := h.leaseUseCase.SignLease(c.Request().Context(), leaseID, currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lease)
}
