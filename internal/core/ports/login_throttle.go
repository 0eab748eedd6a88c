package ports

import "context"

// LoginThrottle limits failed login attempts per key (the normalized email).
type LoginThrottle interface {
	// Allow reports whether another attempt may be made for key.
	Allow(ctx context.Context, key string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, key string) error
	// Reset clears the failure history after a successful login.
	Reset(ctx context.Context, key string) error
}
