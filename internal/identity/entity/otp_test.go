package entity

import (
	"testing"
	"time"
)

func TestOTP_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := OTP{ExpiresAt: now}

	if o.Expired(now) {
		t.Fatal("code must still be valid at exactly its expiry")
	}
	if !o.Expired(now.Add(time.Millisecond)) {
		t.Fatal("code must be expired after its expiry")
	}
}

func TestOTP_CooldownRemaining(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := OTP{CreatedAt: created}

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{name: "just issued", now: created, want: 30 * time.Second},
		{name: "partway", now: created.Add(12500 * time.Millisecond), want: 17500 * time.Millisecond},
		{name: "elapsed", now: created.Add(time.Minute), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.CooldownRemaining(tt.now, 30*time.Second); got != tt.want {
				t.Fatalf("CooldownRemaining() = %v, want %v", got, tt.want)
			}
		})
	}
}
