package entity

import "time"

// Email is a rendered message ready for delivery.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// OTPEmailData feeds the login code templates.
type OTPEmailData struct {
	Code          string
	ExpiresAt     time.Time
	ExpiryMinutes int
	AppName       string
	SupportEmail  string
	Year          string
}
