package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

type CashItemService interface {
	Get(ctx context.Context, id int64) (*domain.CashItem, error)
	List(ctx context.Context, skip, limit int) (*domain.Page[*domain.CashItem], error)
}
