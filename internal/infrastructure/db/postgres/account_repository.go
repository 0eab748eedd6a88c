package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/orius/cartorio-api/internal/core/domain"
)

const accountColumns = `id, full_name, email, password_hash, login, phone, cpf, initials,
	job_title, status, user_type, read_only, must_change_password,
	last_login_at, expires_at, created_at`

type accountRow struct {
	ID                 int64      `db:"id"`
	FullName           string     `db:"full_name"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Login              *string    `db:"login"`
	Phone              *string    `db:"phone"`
	CPF                *string    `db:"cpf"`
	Initials           *string    `db:"initials"`
	JobTitle           *string    `db:"job_title"`
	Status             *string    `db:"status"`
	UserType           *string    `db:"user_type"`
	ReadOnly           bool       `db:"read_only"`
	MustChangePassword bool       `db:"must_change_password"`
	LastLoginAt        *time.Time `db:"last_login_at"`
	ExpiresAt          *time.Time `db:"expires_at"`
	CreatedAt          time.Time  `db:"created_at"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		Profile: domain.AccountProfile{
			Login:              r.Login,
			Phone:              r.Phone,
			CPF:                r.CPF,
			Initials:           r.Initials,
			JobTitle:           r.JobTitle,
			Status:             r.Status,
			UserType:           r.UserType,
			ReadOnly:           r.ReadOnly,
			MustChangePassword: r.MustChangePassword,
			LastLoginAt:        r.LastLoginAt,
			ExpiresAt:          r.ExpiresAt,
		},
	}
}

// AccountRepository implements ports.AccountRepository on PostgreSQL.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) List(ctx context.Context, skip, limit int) ([]*domain.Account, error) {
	var rows []accountRow
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, skip); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.toDomain())
	}
	return accounts, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM accounts`); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return total, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `INSERT INTO accounts (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns

	var row accountRow
	err := r.db.GetContext(ctx, &row, query, account.FullName, account.Email, account.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return row.toDomain(), nil
}

// Update writes the supplied fields of patch in a single statement.
func (r *AccountRepository) Update(ctx context.Context, id int64, patch domain.AccountPatch) error {
	if patch.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("full_name", patch.FullName)
	add("email", patch.Email)
	add("password_hash", patch.PasswordHash)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update account: %w", err)
	}
	return expectAffected(res, domain.ErrAccountNotFound)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return expectAffected(res, domain.ErrAccountNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
