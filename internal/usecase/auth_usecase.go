package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

type AuthUseCase struct {
	accountRepo repository.AccountRepository
	tokens      TokenIssuer
}

func NewAuthUseCase(accountRepo repository.AccountRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		accountRepo: accountRepo,
		tokens:      tokens,
	}
}

type AuthResult struct {
	Account   *entity.Account `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// HashPIN returns the bcrypt hash stored for a PIN.
func HashPIN(pin string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login finds the active account whose PIN matches and issues a token for it.
func (uc *AuthUseCase) Login(ctx context.Context, pin string) (*AuthResult, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, errors.BadRequest("PIN is required", nil)
	}

	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load accounts", err)
	}

	for _, account := range accounts {
		if !account.IsActive() || account.PinHash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PinHash), []byte(pin)) != nil {
			continue
		}

		token, expiresAt, err := uc.tokens.Issue(account.ID, string(account.Role))
		if err != nil {
			return nil, errors.Internal("Failed to issue token", err)
		}

		logger.Info("Account %s logged in as %s", account.ID, account.Role)
		return &AuthResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
	}

	return nil, errors.Unauthorized("Invalid PIN", nil)
}

func (uc *AuthUseCase) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Account", err)
	}
	return account, nil
}
