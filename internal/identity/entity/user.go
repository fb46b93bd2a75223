package entity

import "time"

// User is an account, created on the first successful code verification.
type User struct {
	ID          int64
	Email       string
	Name        string
	CreatedAt   time.Time
	LastLoginAt time.Time
}
