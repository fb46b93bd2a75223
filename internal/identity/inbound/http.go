package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
)

type uc interface {
	RequestOTP(ctx context.Context, in usecase.RequestOTPInput) (*usecase.RequestOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	Me(ctx context.Context) (*usecase.MeOutput, error)
	Logout(ctx context.Context) error
	SessionTTL() time.Duration
}

// CookieConfig shapes the session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cookie CookieConfig) {
	if cookie.Name == "" {
		cookie.Name = router.DefaultSessionCookie
	}

	end := &HTTPEndpoint{uc: uc, cookie: cookie}

	r.POST("/api/auth/request-otp", end.RequestOTP)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)
	r.GET("/api/auth/me", end.Me)
	r.POST("/api/auth/logout", end.Logout)
}
