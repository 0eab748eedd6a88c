package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/orius/cartorio-api/internal/core/domain"
)

const cashItemColumns = `id, description, payment_date, service_value, paid_value, presenter`

type cashItemRow struct {
	ID           int64               `db:"id"`
	Description  string              `db:"description"`
	PaymentDate  *time.Time          `db:"payment_date"`
	ServiceValue decimal.NullDecimal `db:"service_value"`
	PaidValue    decimal.NullDecimal `db:"paid_value"`
	Presenter    string              `db:"presenter"`
}

func (r cashItemRow) toDomain() *domain.CashItem {
	return &domain.CashItem{
		ID:           r.ID,
		Description:  r.Description,
		PaymentDate:  r.PaymentDate,
		ServiceValue: r.ServiceValue,
		PaidValue:    r.PaidValue,
		Presenter:    r.Presenter,
	}
}

// CashItemRepository reads cash register items from PostgreSQL.
type CashItemRepository struct {
	db *sqlx.DB
}

func NewCashItemRepository(db *sqlx.DB) *CashItemRepository {
	return &CashItemRepository{db: db}
}

func (r *CashItemRepository) FindByID(ctx context.Context, id int64) (*domain.CashItem, error) {
	var row cashItemRow
	err := r.db.GetContext(ctx, &row, `SELECT `+cashItemColumns+` FROM cash_items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCashItemNotFound
		}
		return nil, fmt.Errorf("find cash item: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CashItemRepository) List(ctx context.Context, skip, limit int) ([]*domain.CashItem, error) {
	var rows []cashItemRow
	query := `SELECT ` + cashItemColumns + ` FROM cash_items ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, skip); err != nil {
		return nil, fmt.Errorf("list cash items: %w", err)
	}

	items := make([]*domain.CashItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (r *CashItemRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM cash_items`); err != nil {
		return 0, fmt.Errorf("count cash items: %w", err)
	}
	return total, nil
}
