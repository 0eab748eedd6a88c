package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// Lookups return domain.ErrAccountNotFound when no row matches; Create and
// Update return domain.ErrEmailTaken on a unique violation of the email.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id int64, patch domain.AccountPatch) error
	Delete(ctx context.Context, id int64) error
}
