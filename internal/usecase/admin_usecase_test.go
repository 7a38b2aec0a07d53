package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentory/internal/domain/entity"
	"rentory/pkg/errors"
	"rentory/pkg/utils"
)

func newTestAdminUseCase(t *testing.T, pins ...string) (*AdminUseCase, testStores) {
	t.Helper()
	stores := newTestStores()
	uc := NewAdminUseCase(stores.accounts, stores.listings)
	uc.pinCost = bcrypt.MinCost
	uc.now = func() time.Time { return fixedNow }
	uc.newID = func() string { return "s9" }
	uc.newPIN = func() (string, error) {
		pin := pins[0]
		if len(pins) > 1 {
			pins = pins[1:]
		}
		return pin, nil
	}
	return uc, stores
}

func TestAdminUseCase_ToggleAccountStatus(t *testing.T) {
	uc, stores := newTestAdminUseCase(t, "4242")
	ctx := context.Background()

	suspended, err := uc.ToggleAccountStatus(ctx, "u3", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusSuspended, suspended.Status)

	// The suspended renter is locked out of every operation at once.
	chat := NewChatUseCase(stores.conversations, stores.listings, stores.accounts, nil, nil, "u3")
	_, err = chat.ListInbox(ctx, "u1", utils.NewPaginationParams(1, 20))
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	restored, err := uc.ToggleAccountStatus(ctx, "u3", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusActive, restored.Status)

	_, err = chat.ListInbox(ctx, "u1", utils.NewPaginationParams(1, 20))
	assert.NoError(t, err)

	reactivated, err := uc.ToggleAccountStatus(ctx, "u3", "u9")
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusActive, reactivated.Status)
}

func TestAdminUseCase_ToggleRejections(t *testing.T) {
	tests := []struct {
		name    string
		adminID string
		target  string
		code    string
	}{
		{"staff cannot toggle", "s1", "u1", errors.CodeForbidden},
		{"renter cannot toggle", "u1", "u5", errors.CodeForbidden},
		{"own account", "u3", "u3", errors.CodeBadRequest},
		{"unknown account", "u3", "ghost", errors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestAdminUseCase(t, "4242")
			_, err := uc.ToggleAccountStatus(context.Background(), tt.adminID, tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestAdminUseCase_AddStaff(t *testing.T) {
	uc, stores := newTestAdminUseCase(t, "1111", "4242")
	ctx := context.Background()

	// u1 already logs in with 1111, so the first draw is rejected.
	hash, err := HashPIN("1111", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = stores.accounts.Update(ctx, "u1", func(a entity.Account) (entity.Account, error) {
		a.PinHash = hash
		return a, nil
	})
	require.NoError(t, err)

	created, err := uc.AddStaff(ctx, "u3", AddStaffInput{
		Name:     "  Bola Adeyemi ",
		Email:    "bola@rentory.com",
		Position: entity.PositionSupportLead,
	})
	require.NoError(t, err)

	assert.Equal(t, "4242", created.PIN)
	assert.Equal(t, "s9", created.Account.ID)
	assert.Equal(t, "Bola Adeyemi", created.Account.Name)
	assert.Equal(t, entity.RoleStaff, created.Account.Role)
	assert.Equal(t, entity.AccountStatusActive, created.Account.Status)
	assert.Equal(t, fixedNow, created.Account.JoinedAt)

	auth := NewAuthUseCase(stores.accounts, stubIssuer{})
	result, err := auth.Login(ctx, "4242")
	require.NoError(t, err)
	assert.Equal(t, "s9", result.Account.ID)
}

func TestAdminUseCase_AddStaffRejections(t *testing.T) {
	tests := []struct {
		name    string
		adminID string
		input   AddStaffInput
		code    string
	}{
		{"not an admin", "s2", AddStaffInput{Name: "Bola", Position: entity.PositionSupportLead}, errors.CodeForbidden},
		{"blank name", "u3", AddStaffInput{Name: "  ", Position: entity.PositionSupportLead}, errors.CodeBadRequest},
		{"unknown position", "u3", AddStaffInput{Name: "Bola", Position: "JANITOR"}, errors.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, stores := newTestAdminUseCase(t, "4242")
			_, err := uc.AddStaff(context.Background(), tt.adminID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)

			_, err = stores.accounts.GetByID(context.Background(), "s9")
			assert.True(t, errors.Is(err, errors.CodeNotFound))
		})
	}
}

func TestAdminUseCase_AddStaffRunsOutOfPins(t *testing.T) {
	uc, stores := newTestAdminUseCase(t, "1111")
	ctx := context.Background()

	hash, err := HashPIN("1111", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = stores.accounts.Update(ctx, "u5", func(a entity.Account) (entity.Account, error) {
		a.PinHash = hash
		return a, nil
	})
	require.NoError(t, err)

	_, err = uc.AddStaff(ctx, "u3", AddStaffInput{Name: "Bola", Position: entity.PositionSupportLead})
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestAdminUseCase_ApproveListing(t *testing.T) {
	uc, stores := newTestAdminUseCase(t, "4242")
	ctx := context.Background()
	_, err := stores.listings.Update(ctx, "p2", func(l entity.Listing) (entity.Listing, error) {
		l.Status = entity.ListingStatusPending
		l.IsVerified = false
		return l, nil
	})
	require.NoError(t, err)

	_, err = uc.ApproveListing(ctx, "u2", "p2")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	listing, err := uc.ApproveListing(ctx, "s1", "p2")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.True(t, listing.IsVerified)

	_, err = uc.ApproveListing(ctx, "u3", "p99")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestAdminUseCase_ListAccounts(t *testing.T) {
	uc, _ := newTestAdminUseCase(t, "4242")

	accounts, err := uc.ListAccounts(context.Background(), "s2")
	require.NoError(t, err)
	assert.Len(t, accounts, len(testAccounts()))

	_, err = uc.ListAccounts(context.Background(), "g2")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}
