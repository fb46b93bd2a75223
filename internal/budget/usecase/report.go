package usecase

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Summary totals income and expenses of the matching transactions.
func (s *Usecase) Summary(ctx context.Context, f entity.Filter) (*entity.Summary, error) {
	ctx, span := s.startSpan(ctx, "Summary")
	defer span.End()

	txs, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}

	return summarize(txs), nil
}

func summarize(txs []entity.Transaction) *entity.Summary {
	income, expenses := lo.FilterReject(txs, func(t entity.Transaction, _ int) bool {
		return t.Type == entity.TypeIncome
	})

	sum := entity.Summary{
		TotalIncome:   money.Sum(amounts(income)...),
		TotalExpenses: money.Sum(amounts(expenses)...),
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpenses)

	return &sum
}

func amounts(txs []entity.Transaction) []decimal.Decimal {
	return lo.Map(txs, func(t entity.Transaction, _ int) decimal.Decimal { return t.Amount })
}

// CategoryBreakdown groups matching expenses by category. Categories are
// ordered by when their first transaction was recorded and take palette
// colours in that order.
func (s *Usecase) CategoryBreakdown(ctx context.Context, f entity.Filter) ([]entity.CategoryBreakdown, error) {
	ctx, span := s.startSpan(ctx, "CategoryBreakdown")
	defer span.End()

	txs, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}

	return breakdown(txs), nil
}

func breakdown(txs []entity.Transaction) []entity.CategoryBreakdown {
	expenses := lo.Filter(txs, func(t entity.Transaction, _ int) bool {
		return t.Type == entity.TypeExpense
	})
	// insertion order, not the date the user typed
	slices.SortStableFunc(expenses, func(a, b entity.Transaction) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	byCategory := lo.GroupBy(expenses, func(t entity.Transaction) string { return t.Category })
	names := lo.Uniq(lo.Map(expenses, func(t entity.Transaction, _ int) string { return t.Category }))

	return lo.Map(names, func(name string, i int) entity.CategoryBreakdown {
		return entity.CategoryBreakdown{
			Name:  name,
			Value: money.Sum(amounts(byCategory[name])...),
			Color: entity.Palette[i%len(entity.Palette)],
		}
	})
}

// ListCategories returns the fixed category list.
func (s *Usecase) ListCategories(ctx context.Context) []string {
	_, span := s.startSpan(ctx, "ListCategories")
	defer span.End()

	return append([]string(nil), entity.Categories...)
}
