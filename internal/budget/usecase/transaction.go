package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var errTransactionNotFound = goerror.NewBusiness("Transaction not found", goerror.CodeNotFound)

type CreateTransactionInput struct {
	Title    string `validate:"required,max=100"`
	Amount   decimal.Decimal
	Type     string `validate:"required,oneof=income expense"`
	Category string `validate:"required,max=50"`
	// Date accepts YYYY-MM-DD or RFC 3339. Empty means now.
	Date string
}

type DeleteTransactionInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) ListTransactions(ctx context.Context, f entity.Filter) ([]entity.Transaction, error) {
	ctx, span := s.startSpan(ctx, "ListTransactions")
	defer span.End()

	return s.filtered(ctx, f)
}

func parseDate(v string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateTransaction records a transaction for the session user. The amount
// is rounded to cents and must stay positive.
func (s *Usecase) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*entity.Transaction, error) {
	ctx, span := s.startSpan(ctx, "CreateTransaction")
	defer span.End()

	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	amount, err := money.Positive(in.Amount)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "amount", "Amount must be a positive number")
	}

	now := s.clock.Now()
	date := now
	if d := strings.TrimSpace(in.Date); d != "" {
		parsed, ok := parseDate(d)
		if !ok {
			return nil, goerror.NewInvalidInput(nil, "date", "date must be YYYY-MM-DD or RFC 3339")
		}
		date = parsed
	}

	t := entity.Transaction{
		ID:        s.uid.Generate(),
		UserID:    userID,
		Title:     in.Title,
		Amount:    amount,
		Type:      entity.TransactionType(in.Type),
		Category:  in.Category,
		Date:      date,
		CreatedAt: now,
	}

	if err := s.repoStore.CreateTransaction(ctx, t); err != nil {
		slog.ErrorContext(ctx, "failed to repo create transaction", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &t, nil
}

func (s *Usecase) DeleteTransaction(ctx context.Context, in DeleteTransactionInput) error {
	ctx, span := s.startSpan(ctx, "DeleteTransaction")
	defer span.End()

	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoStore.DeleteTransaction(ctx, userID, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return errTransactionNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete transaction", "user_id", userID, "id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
