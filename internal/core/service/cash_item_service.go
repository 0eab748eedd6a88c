package service

import (
	"context"
	"fmt"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

// CashItemService exposes the cash register items read-only.
type CashItemService struct {
	repo ports.CashItemRepository
}

func NewCashItemService(repo ports.CashItemRepository) *CashItemService {
	return &CashItemService{repo: repo}
}

func (s *CashItemService) Get(ctx context.Context, id int64) (*domain.CashItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CashItemService) List(ctx context.Context, skip, limit int) (*domain.Page[*domain.CashItem], error) {
	skip, limit = normalizePage(skip, limit)

	items, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list cash items: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count cash items: %w", err)
	}
	return &domain.Page[*domain.CashItem]{Total: total, Skip: skip, Limit: limit, Items: items}, nil
}
