package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
)

// HTTPEndpoint exposes the one-time code login flow.
type HTTPEndpoint struct {
	uc     uc
	cookie CookieConfig
}

func (h *HTTPEndpoint) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
	} else {
		c.MaxAge = -1
	}

	return c
}

// RequestOTP emails a one-time login code.
// @Summary Request login code
// @Description Issues a 6-digit code for the email and sends it. Repeated requests inside the cooldown are rejected with Retry-After.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RequestOTPRequest true "Email payload"
// @Success 200 {object} router.successResponse{data=RequestOTPResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Cooldown active"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/request-otp [post]
func (h *HTTPEndpoint) RequestOTP(r *router.Request) (any, error) {
	var req RequestOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestOTP(r.Context(), usecase.RequestOTPInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return RequestOTPResponse{
		ExpiresAt:       resp.ExpiresAt,
		CooldownSeconds: resp.CooldownSeconds,
	}, nil
}

// VerifyOTP exchanges a valid code for a session cookie.
// @Summary Verify login code
// @Description Verifies the code, creates the account on first login and sets an httpOnly session cookie.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "Logged in"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Invalid or expired code"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		Code:  req.Code,
		Name:  req.Name,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		User:   newUserResponse(&resp.User),
		cookie: h.sessionCookie(resp.Token, h.uc.SessionTTL()),
	}, nil
}

// Me returns the signed in user, or null without a session.
// @Summary Current user
// @Tags Identity, Authentication
// @Produce json
// @Success 200 {object} router.successResponse{data=MeResponse} "Current user or null"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{User: newUserResponse(resp.User)}, nil
}

// Logout revokes the session and clears the cookie.
// @Summary Log out
// @Tags Identity, Authentication
// @Produce json
// @Success 200 {object} router.successResponse "Logged out"
// @Router /api/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{cookie: h.sessionCookie("", 0)}, nil
}
