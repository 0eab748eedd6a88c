package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
	"github.com/orius/cartorio-api/internal/pkg/sanitize"
)

// AccountService implements signup, login and the account CRUD use cases.
type AccountService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	audit    ports.AuditLog
	log      zerolog.Logger
	now      func() time.Time
}

// NewAccountService wires the account use cases. throttle and audit may be
// nil, in which case logins are never throttled and nothing is audited.
func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	audit ports.AuditLog,
	log zerolog.Logger,
) *AccountService {
	if throttle == nil {
		throttle = noopThrottle{}
	}
	if audit == nil {
		audit = discardAudit{}
	}
	return &AccountService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

func (s *AccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	fullName := sanitize.Clean(in.FullName)
	email := sanitize.Clean(in.Email)
	password := sanitize.Clean(in.Password)

	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: fullName, email and password are required", domain.ErrInvalidInput)
	}
	if !sanitize.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if err := checkSafe(in.FullName, in.Email, in.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("create account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.log.Error().Err(err).Msg("failed to create account")
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.record(ctx, domain.AuditAccountCreated, created.ID)
	s.log.Info().Int64("account_id", created.ID).Msg("account created")

	created.PasswordHash = ""
	return created, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context, skip, limit int) (*domain.Page[*domain.Account], error) {
	skip, limit = normalizePage(skip, limit)

	items, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	return &domain.Page[*domain.Account]{Total: total, Skip: skip, Limit: limit, Items: items}, nil
}

// Update applies the supplied fields only. Fields that are nil or empty after
// cleaning are left untouched.
func (s *AccountService) Update(ctx context.Context, id int64, in ports.UpdateAccountInput) (*domain.Account, error) {
	fullName := cleanOptional(in.FullName)
	email := cleanOptional(in.Email)
	password := cleanOptional(in.Password)

	if email != nil && !sanitize.IsValidEmail(*email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if err := checkSafe(deref(in.FullName), deref(in.Email), deref(in.Password)); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := domain.AccountPatch{FullName: fullName, Email: email}
	if patch.Empty() && password == nil {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	if email != nil {
		owner, err := s.repo.FindByEmail(ctx, *email)
		switch {
		case err == nil && owner.ID != id:
			return nil, domain.ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
			return nil, fmt.Errorf("update account: %w", err)
		}
	}

	if password != nil {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, fmt.Errorf("update account: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	s.record(ctx, domain.AuditAccountUpdated, id)
	return s.repo.FindByID(ctx, id)
}

// Delete removes the account. Deleting an id that does not exist, including
// one deleted a moment ago, returns domain.ErrAccountNotFound.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.AuditAccountDeleted, id)
	s.log.Info().Int64("account_id", id).Msg("account deleted")
	return nil
}

func (s *AccountService) record(ctx context.Context, action string, accountID int64) {
	entry := domain.AuditEntry{
		Action:     action,
		AccountID:  accountID,
		OccurredAt: s.now().UTC(),
	}
	if actor, ok := domain.AccountFromContext(ctx); ok {
		entry.ActorID = actor.ID
	}
	s.audit.Record(entry)
}

// checkSafe runs the denylist over the raw fields, before escaping turns
// markup into entities the denylist no longer recognises.
func checkSafe(fields ...string) error {
	for _, f := range fields {
		if !sanitize.IsSafe(f) {
			return fmt.Errorf("%w: malicious content detected", domain.ErrInvalidInput)
		}
	}
	return nil
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	c := sanitize.Clean(*s)
	if c == "" {
		return nil
	}
	return &c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = domain.DefaultPageLimit
	case limit > domain.MaxPageLimit:
		limit = domain.MaxPageLimit
	}
	return skip, limit
}

type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopThrottle) Fail(context.Context, string) error          { return nil }
func (noopThrottle) Reset(context.Context, string) error         { return nil }

type discardAudit struct{}

func (discardAudit) Record(domain.AuditEntry) {}
