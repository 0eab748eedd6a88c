package domain

import "time"

// TokenTypeAccess is the only token type the API issues and accepts.
const TokenTypeAccess = "access_token"

// TokenClaims is the decoded payload of a bearer token.
type TokenClaims struct {
	Type      string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AccessToken is what a successful login hands back to the caller.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}
