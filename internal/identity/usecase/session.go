package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type MeOutput struct {
	// User is nil when the request carries no valid session.
	User *entity.User
}

func (s *Usecase) sessionTTL() time.Duration {
	if d := s.cfg.GetHour("jwt.ttl_hours"); d > 0 {
		return d
	}
	return defaultSessionTTL
}

// SessionTTL is how long a session issued now stays valid.
func (s *Usecase) SessionTTL() time.Duration {
	return s.sessionTTL()
}

// Me returns the user behind the current session, if any.
func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return &MeOutput{}, nil
	}

	user, err := s.repoStore.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session refers to unknown user", "user_id", clm.UserID)
		return &MeOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MeOutput{User: user}, nil
}

// Logout revokes the current session token. Without a session it is a no-op,
// so clients can always clear their cookie.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil
	}

	exp := s.clock.Now().Add(s.sessionTTL())
	if clm.ExpiresAt != nil {
		exp = clm.ExpiresAt.Time
	}

	s.denylist.Revoke(clm.ID, exp)
	slog.InfoContext(ctx, "session revoked", "user_id", clm.UserID)

	return nil
}
