package domain

import "errors"

var (
	// ErrInvalidInput marks user-fixable payload problems (bad shape, unsafe content).
	ErrInvalidInput = errors.New("invalid input")

	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidSubject     = errors.New("invalid user id format in token")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrAccountNotFound  = errors.New("user not found")
	ErrCashItemNotFound = errors.New("cash item not found")
	ErrEmailTaken       = errors.New("email is already registered")
)
