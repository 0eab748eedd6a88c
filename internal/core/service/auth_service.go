package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/pkg/sanitize"
)

// Authenticate checks an email/password pair. A missing account and a wrong
// password are both reported as domain.ErrInvalidCredentials; any other error
// is a lookup failure.
//
// The password goes through the same cleaning as at signup, otherwise a
// password that Clean rewrites could never match its stored hash.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = sanitize.Clean(email)
	password = sanitize.Clean(password)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates the caller and issues an access token. Failed attempts
// are counted per email; the counter is cleared on success.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	key := strings.ToLower(sanitize.Clean(email))

	allowed, err := s.throttle.Allow(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if ferr := s.throttle.Fail(ctx, key); ferr != nil {
				s.log.Warn().Err(ferr).Msg("failed to record login failure")
			}
		}
		return nil, err
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.log.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to reset login throttle")
	}

	token, err := s.tokens.IssueAccessToken(strconv.FormatInt(account.ID, 10))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("account_id", account.ID).Msg("login succeeded")
	return token, nil
}
