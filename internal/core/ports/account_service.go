package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// CreateAccountInput carries the signup payload.
type CreateAccountInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateAccountInput carries a partial update. Nil or empty fields are ignored.
type UpdateAccountInput struct {
	FullName *string
	Email    *string
	Password *string
}

// AccountService defines the account use cases.
type AccountService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.AccessToken, error)
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, skip, limit int) (*domain.Page[*domain.Account], error)
	Update(ctx context.Context, id int64, in UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}
