package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// JWTConfig holds the signing settings shared by every token.
type JWTConfig struct {
	Secret         string
	Algorithm      string
	AccessTokenTTL time.Duration
	// Location is the zone claim timestamps are computed in. Defaults to UTC.
	Location *time.Location
}

// accessClaims is the wire form of domain.TokenClaims.
type accessClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// JWTService issues and decodes HMAC-signed tokens with a single static secret.
type JWTService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
}

func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: empty signing secret")
	}

	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported signing algorithm %q", cfg.Algorithm)
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &JWTService{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    ttl,
		loc:    loc,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source. Used by tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Issue signs a token of the given type for subject, valid for lifetime.
func (s *JWTService) Issue(subject, tokenType string, lifetime time.Duration) (string, time.Time, error) {
	issuedAt := s.now().In(s.loc)
	expiresAt := issuedAt.Add(lifetime)

	claims := accessClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) IssueAccessToken(subject string) (*domain.AccessToken, error) {
	token, exp, err := s.Issue(subject, domain.TokenTypeAccess, s.ttl)
	if err != nil {
		return nil, err
	}
	return &domain.AccessToken{Token: token, TokenType: "bearer", ExpiresAt: exp}, nil
}

// Decode verifies algorithm, signature and expiry. The audience claim is not
// checked.
func (s *JWTService) Decode(token string) (*domain.TokenClaims, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.TokenClaims{
		Type:      claims.Type,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time.In(s.loc),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.In(s.loc)
	}
	return out, nil
}
