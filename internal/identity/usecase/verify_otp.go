package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
)

var errInvalidCode = goerror.NewBusiness("Invalid or expired code", goerror.CodeInvalidInput)

type VerifyOTPInput struct {
	Email string `validate:"required,email,max=254"`
	Code  string `validate:"required,otp"`
	Name  string `validate:"omitempty,max=100"`
}

type VerifyOTPOutput struct {
	User      entity.User
	Token     string
	ExpiresAt time.Time
}

// VerifyOTP consumes a valid code and opens a session, creating the user on
// first login. Each wrong code counts against the record; reaching the limit
// discards it.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.consumeOTP(ctx, in.Email, in.Code); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	user, err := s.loginUser(ctx, in.Email, in.Name, now)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{
		User:      *user,
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL()),
	}, nil
}

func (s *Usecase) consumeOTP(ctx context.Context, email, code string) error {
	s.otpMu.Lock()
	defer s.otpMu.Unlock()

	record, err := s.repoStore.GetOTP(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verification without live code", "email", email)
		return errInvalidCode
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if record.Expired(s.clock.Now()) {
		slog.WarnContext(ctx, "otp verification with expired code", "email", email)
		if err := s.repoStore.DeleteOTP(ctx, email); err != nil {
			slog.ErrorContext(ctx, "failed to repo delete expired otp", "email", email, "error", err)
		}
		return errInvalidCode
	}

	if !s.codeHash.Verify(record.CodeHash, code) {
		attempts, err := s.repoStore.IncrementOTPAttempts(ctx, email)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo increment otp attempts", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		if attempts >= s.otpMaxAttempts() {
			slog.WarnContext(ctx, "otp attempts exhausted", "email", email, "attempts", attempts)
			if err := s.repoStore.DeleteOTP(ctx, email); err != nil {
				slog.ErrorContext(ctx, "failed to repo delete exhausted otp", "email", email, "error", err)
				return goerror.NewServer(err)
			}
			return goerror.NewTooManyRequest("Too many attempts. Please request a new code.", 0)
		}

		slog.WarnContext(ctx, "otp verification with wrong code", "email", email, "attempts", attempts)
		return errInvalidCode
	}

	if err := s.repoStore.DeleteOTP(ctx, email); err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) loginUser(ctx context.Context, email, name string, now time.Time) (*entity.User, error) {
	existing, err := s.repoStore.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if existing != nil {
		user, err := s.repoStore.UpdateUserLogin(ctx, existing.ID, name, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo update user login", "user_id", existing.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		return user, nil
	}

	user := entity.User{
		ID:          s.uid.Generate(),
		Email:       email,
		Name:        name,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	if err := s.repoStore.CreateUser(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user created on first login", "user_id", user.ID)

	return &user, nil
}
