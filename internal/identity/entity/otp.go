package entity

import "time"

// OTP is the single live login code for an email. Only the digest of the
// code is kept.
type OTP struct {
	Email     string
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at now.
func (o OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// CooldownRemaining is how long until another code may be requested,
// zero when the cooldown has passed.
func (o OTP) CooldownRemaining(now time.Time, cooldown time.Duration) time.Duration {
	return max(o.CreatedAt.Add(cooldown).Sub(now), 0)
}
