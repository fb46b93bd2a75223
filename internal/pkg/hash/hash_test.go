package hash

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashers(t *testing.T) {
	hashers := map[string]Hash{
		"bcrypt": NewBcrypt(bcrypt.MinCost, "pepper"),
		"hmac":   NewHMACSHA256("secret"),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			// Arrange
			digest, err := h.Hash("123456")
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			// Act & Assert
			if string(digest) == "123456" {
				t.Fatal("digest must not equal plaintext")
			}
			if !h.Verify(string(digest), "123456") {
				t.Fatal("Verify() rejected matching code")
			}
			if h.Verify(string(digest), "654321") {
				t.Fatal("Verify() accepted wrong code")
			}
		})
	}
}

func TestBcrypt_PepperMismatch(t *testing.T) {
	digest, err := NewBcrypt(bcrypt.MinCost, "a").Hash("123456")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if NewBcrypt(bcrypt.MinCost, "b").Verify(string(digest), "123456") {
		t.Fatal("Verify() must fail with a different pepper")
	}
}

func TestBcrypt_EmptyInput(t *testing.T) {
	h := NewBcrypt(0, "")
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default", h.cost)
	}
	if h.Verify("", "123456") || h.Verify("x", "") {
		t.Fatal("Verify() must reject empty input")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantType string
		wantErr  error
	}{
		{name: "blank is bcrypt", cfg: Config{BcryptCost: bcrypt.MinCost}, wantType: "*hash.Bcrypt"},
		{name: "bcrypt", cfg: Config{Driver: DriverBcrypt, BcryptCost: bcrypt.MinCost, Pepper: "p"}, wantType: "*hash.Bcrypt"},
		{name: "hmac", cfg: Config{Driver: DriverHMACSHA256, Pepper: "k"}, wantType: "*hash.HMACSHA256"},
		{name: "hmac without key", cfg: Config{Driver: DriverHMACSHA256}, wantErr: ErrHMACKeyRequired},
		{name: "unknown", cfg: Config{Driver: "md5"}, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			h, err := New(tt.cfg)

			// Assert
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := fmt.Sprintf("%T", h); got != tt.wantType {
				t.Fatalf("New() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}
