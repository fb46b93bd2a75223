package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")
	ErrSigningKeyTooShort   = errors.New("HS512 signing key must be at least 64 bytes")
	ErrMissingDependency    = errors.New("jwt clock and id generator are required")
	ErrTokenExpired         = errors.New("JWT token has expired")
	ErrTokenRevoked         = errors.New("JWT token has been revoked")
	ErrInvalidToken         = errors.New("invalid token")
)

// JWT issues and checks session tokens.
type JWT interface {
	Generate(uid int64, email string) (string, error)
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	// UUID produces the jti, which is what the denylist keys on.
	UUID generator
}

// Claims are the registered claims plus the session's user.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id,string"`
	UserEmail string `json:"user_email"`
}

type authKey struct{}

// GetAuth returns the claims put on ctx by SetAuth, or nil.
func GetAuth(ctx context.Context) *Claims {
	if clm, ok := ctx.Value(authKey{}).(Claims); ok {
		return &clm
	}
	return nil
}

func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, authKey{}, clm)
}
