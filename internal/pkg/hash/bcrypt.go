package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt salts every digest, so equal codes hash differently. The pepper is
// appended to the input and is kept in config, away from the digests.
type Bcrypt struct {
	cost   int
	pepper []byte
}

// NewBcrypt clamps an out of range cost to bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: []byte(pepper)}
}

func (b *Bcrypt) peppered(s string) []byte {
	return append([]byte(s), b.pepper...)
}

func (b *Bcrypt) Hash(code string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(b.peppered(code), b.cost)
}

// Verify is false for empty input on either side.
func (b *Bcrypt) Verify(digest, code string) bool {
	if digest == "" || code == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), b.peppered(code)) == nil
}
