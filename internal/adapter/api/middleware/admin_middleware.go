package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
)

type AdminMiddleware struct {
	accountRepo repository.AccountRepository
}

func NewAdminMiddleware(accountRepo repository.AccountRepository) *AdminMiddleware {
	return &AdminMiddleware{
		accountRepo: accountRepo,
	}
}

// AdminOnly admits active administrators. Must run after Authenticate.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(func(a entity.Actor) bool {
		_, ok := a.(entity.Administrator)
		return ok
	}, "Admin privileges required", next)
}

// StaffOnly admits active administrators and staff.
func (m *AdminMiddleware) StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.IsPlatformOperator, "Platform staff only", next)
}

func (m *AdminMiddleware) require(allowed func(entity.Actor) bool, message string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		account, err := m.accountRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unknown account")
		}

		actor := account.Actor()
		if !account.IsActive() || actor == nil || !allowed(actor) {
			return echo.NewHTTPError(http.StatusForbidden, message)
		}

		return next(c)
	}
}
