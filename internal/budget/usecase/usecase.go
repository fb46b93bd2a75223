package usecase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

var errUnauthenticated = goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)

type repoStore interface {
	ListTransactions(ctx context.Context, userID int64) ([]entity.Transaction, error)
	CreateTransaction(ctx context.Context, t entity.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id int64) error
}

type Usecase struct {
	repoStore repoStore
	validator validator.Validator
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoStore  repoStore
	Validator  validator.Validator
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore: dep.RepoStore,
		validator: dep.Validator,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("budget.usecase").Start(ctx, name)
}

func currentUser(ctx context.Context) (int64, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return 0, errUnauthenticated
	}
	return clm.UserID, nil
}

func validateFilter(f entity.Filter) error {
	if f.Type != "" && !f.Type.Valid() {
		return goerror.NewInvalidInput(nil, "type", "type must be one of [income expense]")
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return goerror.NewInvalidInput(nil, "end_date", "end_date must not be before start_date")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MaxAmount.LessThan(*f.MinAmount) {
		return goerror.NewInvalidInput(nil, "max_amount", "max_amount must not be below min_amount")
	}
	return nil
}

// filtered returns the user's transactions matching f, newest first.
func (s *Usecase) filtered(ctx context.Context, f entity.Filter) ([]entity.Transaction, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateFilter(f); err != nil {
		return nil, err
	}

	txs, err := s.repoStore.ListTransactions(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list transactions", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	txs = slices.DeleteFunc(txs, func(t entity.Transaction) bool { return !f.Match(t) })
	slices.SortFunc(txs, func(a, b entity.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	return txs, nil
}
