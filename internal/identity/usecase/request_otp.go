package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
)

type RequestOTPInput struct {
	Email string `validate:"required,email,max=254"`
}

type RequestOTPOutput struct {
	ExpiresAt       time.Time
	CooldownSeconds int
}

// RequestOTP issues a new login code for the email and hands it to the
// delivery channel. A request inside the cooldown window is rejected with
// a retry hint.
func (s *Usecase) RequestOTP(ctx context.Context, in RequestOTPInput) (*RequestOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	s.otpMu.Lock()
	defer s.otpMu.Unlock()

	now := s.clock.Now()
	cooldown := s.otpCooldown()

	prev, err := s.repoStore.GetOTP(ctx, in.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if prev != nil {
		if wait := prev.CooldownRemaining(now, cooldown); wait > 0 {
			slog.WarnContext(ctx, "otp requested during cooldown", "email", in.Email, "wait", wait.String())
			return nil, goerror.NewTooManyRequest("Please wait before requesting another code", wait)
		}
	}

	code, err := s.otp.Code()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	digest, err := s.codeHash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	record := entity.OTP{
		Email:     in.Email,
		CodeHash:  string(digest),
		ExpiresAt: now.Add(s.otpTTL()),
		CreatedAt: now,
	}

	if err := s.repoStore.SaveOTP(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to repo save otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPRequested(ctx, OTPRequestedEvent{
		Email:     in.Email,
		Code:      code,
		ExpiresAt: record.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp requested", "email", in.Email, "error", err)
		if errDel := s.repoStore.DeleteOTP(ctx, in.Email); errDel != nil {
			slog.ErrorContext(ctx, "failed to repo delete undelivered otp", "email", in.Email, "error", errDel)
		}
		return nil, goerror.NewServer(err)
	}

	return &RequestOTPOutput{
		ExpiresAt:       record.ExpiresAt,
		CooldownSeconds: int(math.Ceil(cooldown.Seconds())),
	}, nil
}
