package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// CashItemRepository is the read-only store of cash register items.
type CashItemRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.CashItem, error)
	List(ctx context.Context, skip, limit int) ([]*domain.CashItem, error)
	Count(ctx context.Context) (int64, error)
}
