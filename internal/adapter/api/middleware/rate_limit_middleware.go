package middleware

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/infrastructure/ratelimit"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
	"rentory/pkg/response"
)

// RateLimit throttles action per client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if ok, wait := limiter.Allow(ip, action); !ok {
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %v)", action, ip, wait)
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", wait))
			}

			return next(c)
		}
	}
}

// AuthRateLimit guards the login route.
func AuthRateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return RateLimit(limiter, ratelimit.ActionLogin)
}
