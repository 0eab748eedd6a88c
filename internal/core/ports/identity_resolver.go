package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// IdentityResolver turns a bearer token into the caller's account.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Account, error)
}
