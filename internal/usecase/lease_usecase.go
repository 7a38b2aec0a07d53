package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

type LeaseUseCase struct {
	leaseRepo   repository.LeaseRepository
	listingRepo repository.ListingRepository
	accountRepo repository.AccountRepository
	notifier    EventNotifier
	now         func() time.Time
	newID       func() string
}

func NewLeaseUseCase(
	leaseRepo repository.LeaseRepository,
	listingRepo repository.ListingRepository,
	accountRepo repository.AccountRepository,
	notifier EventNotifier,
) *LeaseUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &LeaseUseCase{
		leaseRepo:   leaseRepo,
		listingRepo: listingRepo,
		accountRepo: accountRepo,
		notifier:    notifier,
		now:         time.Now,
		newID:       func() string { return "lease_" + uuid.New().String() },
	}
}

type CreateLeaseInput struct {
	ListingID string
	TenantID  string
	Content   string
}

// LeaseList is a viewer's lease list together with how many of those leases
// wait on the viewer's own signature.
type LeaseList struct {
	Leases         []*entity.Lease `json:"leases"`
	PendingActions int             `json:"pending_actions"`
}

// CreateLease issues a new lease, already signed by the landlord, on one of
// ownerID's listings.
func (uc *LeaseUseCase) CreateLease(ctx context.Context, ownerID string, input CreateLeaseInput) (*entity.Lease, error) {
	actor, err := loadActor(ctx, uc.accountRepo, ownerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.BadRequest("Contract text is required", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	if !service.CanCreateLease(actor, listing) {
		return nil, errors.Forbidden("Only the listing owner can issue a lease", nil)
	}

	tenant, err := uc.accountRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, errors.NotFound("Tenant", err)
	}
	if tenant.Role != entity.RoleTenant {
		return nil, errors.BadRequest("Lease tenant must be a renter", nil)
	}

	lease := &entity.Lease{
		ID:        uc.newID(),
		Property:  entity.PartyRef{ID: listing.ID, Name: listing.Title},
		Tenant:    entity.PartyRef{ID: tenant.ID, Name: tenant.Name},
		Landlord:  entity.PartyRef{ID: actor.PartyID(), Name: actor.DisplayName()},
		Content:   input.Content,
		Status:    entity.LeaseSignedByLandlord,
		CreatedAt: uc.now(),
	}

	if err := uc.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}

	logger.Info("Lease %s issued on listing %s for tenant %s", lease.ID, listing.ID, tenant.ID)
	uc.notifier.LeaseUpdated(*lease)

	return lease, nil
}

// SignLease applies actorID's signature to the lease. A signature the lease
// is not waiting for leaves it untouched and is not an error.
func (uc *LeaseUseCase) SignLease(ctx context.Context, leaseID, actorID string) (*entity.Lease, error) {
	actor, err := loadActor(ctx, uc.accountRepo, actorID)
	if err != nil {
		return nil, err
	}

	var decision service.SignatureDecision
	var from entity.LeaseStatus

	updated, err := uc.leaseRepo.Update(ctx, leaseID, func(current entity.Lease) (entity.Lease, error) {
		if !current.Status.Valid() {
			return current, errors.Conflict(fmt.Sprintf("lease %s has unknown status %q", current.ID, current.Status))
		}
		from = current.Status
		decision = service.AuthorizeSignature(actor, current, uc.now())
		return decision.Lease, nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogLeaseTransition(leaseID, actor.PartyID(), string(from), string(updated.Status), decision.Allowed)
	if !decision.Allowed {
		logger.Debug("Signature by %s on lease %s ignored: %s", actor.PartyID(), leaseID, decision.Reason)
		return updated, nil
	}

	uc.notifier.LeaseUpdated(*updated)
	return updated, nil
}

func (uc *LeaseUseCase) GetLease(ctx context.Context, viewerID, leaseID string) (*entity.Lease, error) {
	actor, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}

	lease, err := uc.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if !service.CanViewLease(actor, *lease) {
		return nil, errors.Forbidden("You are not a party to this lease", nil)
	}
	return lease, nil
}

// ListLeases returns the leases viewerID may see, newest first.
func (uc *LeaseUseCase) ListLeases(ctx context.Context, viewerID string) (*LeaseList, error) {
	actor, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}

	leases, err := uc.leaseRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list leases", err)
	}

	result := &LeaseList{Leases: []*entity.Lease{}}
	for _, lease := range leases {
		if !service.CanViewLease(actor, *lease) {
			continue
		}
		result.Leases = append(result.Leases, lease)
		if service.AwaitsSignatureFrom(actor, *lease) {
			result.PendingActions++
		}
	}
	return result, nil
}
