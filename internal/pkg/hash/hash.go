package hash

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDriver   = errors.New("hash: unknown driver")
	ErrHMACKeyRequired = errors.New("hash: hmac_sha256 needs a non-empty key")
)

// Driver names accepted by New.
const (
	DriverBcrypt     = "bcrypt"
	DriverHMACSHA256 = "hmac_sha256"
)

// Hash turns a secret into a storable digest and checks candidates against it.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

// Config selects the digest used for one-time codes. Pepper is the bcrypt
// pepper or the HMAC key.
type Config struct {
	Driver     string
	BcryptCost int
	Pepper     string
}

// New builds the driver named by cfg.Driver; blank means bcrypt.
func New(cfg Config) (Hash, error) {
	switch cfg.Driver {
	case "", DriverBcrypt:
		return NewBcrypt(cfg.BcryptCost, cfg.Pepper), nil
	case DriverHMACSHA256:
		if cfg.Pepper == "" {
			return nil, ErrHMACKeyRequired
		}
		return NewHMACSHA256(cfg.Pepper), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
