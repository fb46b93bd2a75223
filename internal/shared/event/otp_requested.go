package event

import "time"

const OTPRequestedDestination string = "otp_requested"
const OTPRequestedDestinationConsumerNotification string = "otp_requested_notification"

// OTPRequestedMessage asks for a login code to be delivered to Email.
type OTPRequestedMessage struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
