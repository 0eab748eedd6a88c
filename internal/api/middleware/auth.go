package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orius/cartorio-api/internal/api/metrics"
	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

// AccountKey is the echo context key holding the authenticated *domain.Account.
const AccountKey = "account"

// Auth resolves the bearer token into an account and injects it into both the
// echo context and the request context. Failures are returned as domain
// errors for the central error handler.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			account, err := resolver.Resolve(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			c.Set(AccountKey, account)
			c.SetRequest(c.Request().WithContext(domain.ContextWithAccount(c.Request().Context(), account)))

			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidSubject):
		return "invalid_subject"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "invalid_token"
	default:
		return "error"
	}
}
