package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

const pinAttempts = 10

type AdminUseCase struct {
	accountRepo repository.AccountRepository
	listingRepo repository.ListingRepository
	pinCost     int
	now         func() time.Time
	newID       func() string
	newPIN      func() (string, error)
}

func NewAdminUseCase(accountRepo repository.AccountRepository, listingRepo repository.ListingRepository) *AdminUseCase {
	return &AdminUseCase{
		accountRepo: accountRepo,
		listingRepo: listingRepo,
		pinCost:     bcrypt.DefaultCost,
		now:         time.Now,
		newID:       func() string { return "s" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12] },
		newPIN:      randomPIN,
	}
}

type AddStaffInput struct {
	Name     string
	Email    string
	Position entity.StaffPosition
}

// StaffAccount is a freshly created staff account with its access PIN. The
// PIN is only ever returned here.
type StaffAccount struct {
	Account *entity.Account `json:"account"`
	PIN     string          `json:"pin"`
}

// ListAccounts returns every account to platform staff.
func (uc *AdminUseCase) ListAccounts(ctx context.Context, viewerID string) ([]*entity.Account, error) {
	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}
	if !entity.IsPlatformOperator(viewer) {
		return nil, errors.Forbidden("Platform staff only", nil)
	}

	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list accounts", err)
	}
	return accounts, nil
}

// ToggleAccountStatus suspends an active account and reactivates any other.
// Administrators cannot toggle their own account.
func (uc *AdminUseCase) ToggleAccountStatus(ctx context.Context, adminID, accountID string) (*entity.Account, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if adminID == accountID {
		return nil, errors.BadRequest("You cannot change the status of your own account", nil)
	}

	account, err := uc.accountRepo.Update(ctx, accountID, func(current entity.Account) (entity.Account, error) {
		if current.Status == entity.AccountStatusActive {
			current.Status = entity.AccountStatusSuspended
		} else {
			current.Status = entity.AccountStatusActive
		}
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Account %s set to %s by %s", account.ID, account.Status, adminID)
	return account, nil
}

// AddStaff creates an active staff account with a generated four-digit PIN
// that no other account uses.
func (uc *AdminUseCase) AddStaff(ctx context.Context, adminID string, input AddStaffInput) (*StaffAccount, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if !input.Position.Valid() {
		return nil, errors.BadRequest(fmt.Sprintf("Unknown staff position %q", input.Position), nil)
	}

	pin, err := uc.uniquePIN(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := HashPIN(pin, uc.pinCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash PIN", err)
	}

	account := &entity.Account{
		ID:       uc.newID(),
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Role:     entity.RoleStaff,
		Position: input.Position,
		PinHash:  hash,
		Status:   entity.AccountStatusActive,
		JoinedAt: uc.now(),
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Staff account %s (%s) created by %s", account.ID, account.Position, adminID)
	return &StaffAccount{Account: account, PIN: pin}, nil
}

// ApproveListing publishes a pending listing and marks it verified.
func (uc *AdminUseCase) ApproveListing(ctx context.Context, viewerID, listingID string) (*entity.Listing, error) {
	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}
	if !entity.IsPlatformOperator(viewer) {
		return nil, errors.Forbidden("Platform staff only", nil)
	}

	listing, err := uc.listingRepo.Update(ctx, listingID, func(current entity.Listing) (entity.Listing, error) {
		current.Status = entity.ListingStatusActive
		current.IsVerified = true
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Listing %s approved by %s", listing.ID, viewerID)
	return listing, nil
}

func (uc *AdminUseCase) requireAdmin(ctx context.Context, id string) error {
	actor, err := loadActor(ctx, uc.accountRepo, id)
	if err != nil {
		return err
	}
	if _, ok := actor.(entity.Administrator); !ok {
		return errors.Forbidden("Admin privileges required", nil)
	}
	return nil
}

// uniquePIN draws PINs until one matches no stored account, since login
// identifies the account by PIN alone.
func (uc *AdminUseCase) uniquePIN(ctx context.Context) (string, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return "", errors.Internal("Failed to load accounts", err)
	}

	for i := 0; i < pinAttempts; i++ {
		pin, err := uc.newPIN()
		if err != nil {
			return "", errors.Internal("Failed to generate PIN", err)
		}
		if !pinTaken(accounts, pin) {
			return pin, nil
		}
	}
	return "", errors.Conflict("Could not allocate a free PIN")
}

func pinTaken(accounts []*entity.Account, pin string) bool {
	for _, a := range accounts {
		if a.PinHash != "" && bcrypt.CompareHashAndPassword([]byte(a.PinHash), []byte(pin)) == nil {
			return true
		}
	}
	return false
}

func randomPIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
