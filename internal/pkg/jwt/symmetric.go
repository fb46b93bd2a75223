package jwt

import (
	"errors"
	"strconv"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

const minHS512KeyLen = 64

// Symmetric signs and verifies HS512 tokens with a shared secret.
type Symmetric struct {
	secret    []byte
	issuer    string
	audiences []string
	ttl       time.Duration
	clock     clocker
	jti       generator
	parser    *libJWT.Parser
}

func NewHS512(cfg Config) (*Symmetric, error) {
	switch {
	case len(cfg.Secret) < minHS512KeyLen:
		return nil, ErrSigningKeyTooShort
	case cfg.Clock == nil, cfg.UUID == nil:
		return nil, ErrMissingDependency
	}

	parser := libJWT.NewParser(
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuer(cfg.Issuer),
		libJWT.WithAudience(cfg.Audiences...),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(cfg.Clock.Now),
	)

	return &Symmetric{
		secret:    cfg.Secret,
		issuer:    cfg.Issuer,
		audiences: cfg.Audiences,
		ttl:       cfg.TTL,
		clock:     cfg.Clock,
		jti:       cfg.UUID,
		parser:    parser,
	}, nil
}

func (s *Symmetric) Generate(uid int64, email string) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID:    uid,
		UserEmail: email,
	}
	claims.ID = s.jti.Generate()
	claims.Subject = strconv.FormatInt(uid, 10)
	claims.Issuer = s.issuer
	claims.Audience = s.audiences
	claims.IssuedAt = libJWT.NewNumericDate(now)
	claims.NotBefore = claims.IssuedAt
	claims.ExpiresAt = libJWT.NewNumericDate(now.Add(s.ttl))

	return libJWT.NewWithClaims(libJWT.SigningMethodHS512, claims).SignedString(s.secret)
}

// Verify returns ErrTokenExpired for an otherwise valid but stale token.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := s.parser.ParseWithClaims(tokenStr, &claims, s.key)
	switch {
	case errors.Is(err, libJWT.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, err
	case !token.Valid:
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func (s *Symmetric) key(t *libJWT.Token) (any, error) {
	if _, ok := t.Method.(*libJWT.SigningMethodHMAC); !ok {
		return nil, ErrInvalidSigningMethod
	}
	return s.secret, nil
}
