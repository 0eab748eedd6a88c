package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

// IdentityService resolves bearer tokens into accounts. Every call reads the
// account from the store, so a deleted account is locked out immediately even
// while its tokens are still unexpired.
type IdentityService struct {
	tokens   ports.TokenService
	accounts ports.AccountRepository
}

func NewIdentityService(tokens ports.TokenService, accounts ports.AccountRepository) *IdentityService {
	return &IdentityService{tokens: tokens, accounts: accounts}
}

func (s *IdentityService) Resolve(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.Type != domain.TokenTypeAccess {
		return nil, domain.ErrUnauthenticated
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidSubject
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return account, nil
}
