package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
)

type RequestOTPRequest struct {
	Email string `json:"email"`
}

type RequestOTPResponse struct {
	ExpiresAt       time.Time `json:"expires_at"`
	CooldownSeconds int       `json:"cooldown_seconds"`
}

func (RequestOTPResponse) Message() string {
	return "OTP sent to your email"
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
}

type UserResponse struct {
	ID    int64  `json:"id,string"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func newUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

type VerifyOTPResponse struct {
	User *UserResponse `json:"user"`

	cookie *http.Cookie
}

func (VerifyOTPResponse) Message() string {
	return "Logged in successfully"
}

func (v VerifyOTPResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{v.cookie}
}

type MeResponse struct {
	User *UserResponse `json:"user"`
}

type LogoutResponse struct {
	cookie *http.Cookie
}

func (LogoutResponse) Message() string {
	return "Logged out"
}

func (l LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{l.cookie}
}
