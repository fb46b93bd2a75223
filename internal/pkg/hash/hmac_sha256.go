package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 is a deterministic keyed digest, hex encoded. Equal inputs give
// equal digests, so it fits values that are looked up by their digest.
type HMACSHA256 struct {
	key []byte
}

func NewHMACSHA256(key string) *HMACSHA256 {
	return &HMACSHA256{key: []byte(key)}
}

func (h *HMACSHA256) sum(s string) []byte {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(s))
	return mac.Sum(nil)
}

func (h *HMACSHA256) Hash(s string) ([]byte, error) {
	return []byte(hex.EncodeToString(h.sum(s))), nil
}

func (h *HMACSHA256) Verify(digest, s string) bool {
	raw, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(raw, h.sum(s))
}
