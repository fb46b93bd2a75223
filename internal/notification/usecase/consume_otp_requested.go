package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gobudget/internal/notification/entity"
)

type ConsumeOTPRequestedInput struct {
	Email     string    `validate:"required,email"`
	Code      string    `validate:"required,otp"`
	ExpiresAt time.Time `validate:"required"`
}

// ConsumeOTPRequested emails a login code. Malformed events are dropped;
// an error is returned only when every delivery attempt failed.
func (s *Usecase) ConsumeOTPRequested(ctx context.Context, in ConsumeOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	now := s.clock.Now()
	if !in.ExpiresAt.After(now) {
		slog.WarnContext(ctx, "skip delivery of expired otp", "email", in.Email)
		return nil
	}

	text, html, err := renderOTP(entity.OTPEmailData{
		Code:          in.Code,
		ExpiresAt:     in.ExpiresAt,
		ExpiryMinutes: int(math.Ceil(in.ExpiresAt.Sub(now).Minutes())),
		AppName:       s.appName(),
		SupportEmail:  s.supportEmail(),
		Year:          now.Format("2006"),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "email", in.Email, "error", err)
		return nil
	}

	msg := entity.Email{
		To:       in.Email,
		Subject:  "Your " + s.appName() + " login code",
		TextBody: text,
		HTMLBody: html,
	}

	b := retry.WithMaxRetries(s.retryAttempts()-1, retry.NewExponential(s.retryBase()))

	attempt := 0
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := s.repoMail.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "otp email delivery attempt failed", "email", in.Email, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "email", in.Email, "attempts", attempt, "error", err)
		return err
	}

	slog.InfoContext(ctx, "otp email sent", "email", in.Email, "attempts", attempt)

	return nil
}
