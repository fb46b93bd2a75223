package api

import (
	"context"
	"net/http"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type OTPRequested struct {
	ExpiresAt       time.Time `json:"expires_at"`
	CooldownSeconds int       `json:"cooldown_seconds"`
}

func (c *Client) RequestOTP(ctx context.Context, email string) (*OTPRequested, error) {
	var out OTPRequested
	if err := c.do(ctx, http.MethodPost, "/auth/request-otp", nil, map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges a code for a session. An empty name is omitted.
func (c *Client) VerifyOTP(ctx context.Context, email, code, name string) (*User, error) {
	body := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
		Name  string `json:"name,omitempty"`
	}{Email: email, Code: code, Name: name}

	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Me returns the signed in user, or nil without a session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
