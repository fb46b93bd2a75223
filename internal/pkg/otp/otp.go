package otp

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// secretSize follows the RFC 4226 recommendation of 160 bits.
const secretSize = 20

// Generator produces one-time codes.
type Generator interface {
	Code() (string, error)
}

// HOTPCode generates fixed length numeric codes.
type HOTPCode struct {
	digits otp.Digits
}

// NewHOTPCode returns a generator for the given length. Lengths other than
// 6 or 8 fall back to 6 digits.
func NewHOTPCode(digits otp.Digits) *HOTPCode {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	return &HOTPCode{digits: digits}
}

// Code returns a new zero padded numeric code.
func (h *HOTPCode) Code() (string, error) {
	raw := make([]byte, secretSize+8)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:secretSize])
	counter := binary.BigEndian.Uint64(raw[secretSize:])

	return hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    h.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}

// Valid reports whether code is exactly six ASCII digits.
func Valid(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
