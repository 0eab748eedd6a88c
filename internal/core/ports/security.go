package ports

import (
	"time"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify fails closed: a malformed hash is reported as a mismatch.
	Verify(password, hash string) bool
}

// TokenService issues and decodes signed bearer tokens.
type TokenService interface {
	Issue(subject, tokenType string, lifetime time.Duration) (string, time.Time, error)
	IssueAccessToken(subject string) (*domain.AccessToken, error)
	// Decode returns domain.ErrInvalidToken for malformed, forged or expired tokens.
	Decode(token string) (*domain.TokenClaims, error)
}
