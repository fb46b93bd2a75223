package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
)

func TestMemory_OTP(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(instrument.NewNoop())

	if _, err := m.GetOTP(ctx, "ada@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetOTP() on empty store = %v", err)
	}

	_ = m.SaveOTP(ctx, entity.OTP{Email: "ada@example.com", CodeHash: "first"})
	_ = m.SaveOTP(ctx, entity.OTP{Email: "ada@example.com", CodeHash: "second"})

	got, err := m.GetOTP(ctx, "ada@example.com")
	if err != nil || got.CodeHash != "second" {
		t.Fatalf("GetOTP() = %+v, %v; want replaced record", got, err)
	}

	for want := 1; want <= 2; want++ {
		n, err := m.IncrementOTPAttempts(ctx, "ada@example.com")
		if err != nil || n != want {
			t.Fatalf("IncrementOTPAttempts() = %d, %v; want %d", n, err, want)
		}
	}

	_ = m.DeleteOTP(ctx, "ada@example.com")
	if _, err := m.IncrementOTPAttempts(ctx, "ada@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("IncrementOTPAttempts() after delete = %v", err)
	}
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(instrument.NewNoop())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := m.CreateUser(ctx, entity.User{ID: 1, Email: "ada@example.com", Name: "Ada"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := m.CreateUser(ctx, entity.User{ID: 2, Email: "ada@example.com"}); !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("CreateUser() duplicate = %v", err)
	}

	u, err := m.UpdateUserLogin(ctx, 1, "", now)
	if err != nil || u.Name != "Ada" || !u.LastLoginAt.Equal(now) {
		t.Fatalf("UpdateUserLogin() = %+v, %v", u, err)
	}

	u, _ = m.UpdateUserLogin(ctx, 1, "Ada Lovelace", now)
	if u.Name != "Ada Lovelace" {
		t.Fatalf("name not updated: %+v", u)
	}

	byEmail, err := m.GetUserByEmail(ctx, "ada@example.com")
	if err != nil || byEmail.ID != 1 {
		t.Fatalf("GetUserByEmail() = %+v, %v", byEmail, err)
	}
	if _, err := m.GetUserByID(ctx, 99); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetUserByID(99) = %v", err)
	}
	if _, err := m.UpdateUserLogin(ctx, 99, "", now); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("UpdateUserLogin(99) = %v", err)
	}
}
