package usecase

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/budget/outbound/memory"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type seqID struct{ n int64 }

func (s *seqID) Generate() int64 {
	s.n++
	return s.n
}

func newTestUsecase(t *testing.T) (*Usecase, *clock.Manual) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	clk := clock.NewManual(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC))

	return New(Dependency{
		RepoStore:  memory.NewMemory(instrument.NewNoop()),
		Validator:  v,
		UID:        &seqID{},
		Clock:      clk,
		Instrument: instrument.NewNoop(),
	}), clk
}

func asUser(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id})
}

func statusOf(err error) int {
	var ge *goerror.Error
	if errors.As(err, &ge) {
		return ge.StatusCode()
	}
	return 0
}

func mustCreate(t *testing.T, uc *Usecase, ctx context.Context, in CreateTransactionInput) *entity.Transaction {
	t.Helper()

	tx, err := uc.CreateTransaction(ctx, in)
	if err != nil {
		t.Fatalf("CreateTransaction(%+v) error = %v", in, err)
	}
	return tx
}

func TestCreateTransaction(t *testing.T) {
	uc, clk := newTestUsecase(t)
	ctx := asUser(1)

	t.Run("rounds amount and defaults date", func(t *testing.T) {
		tx := mustCreate(t, uc, ctx, CreateTransactionInput{
			Title: " Lunch ", Amount: decimal.RequireFromString("12.345"), Type: "Expense", Category: "Food",
		})

		if tx.Title != "Lunch" || tx.Amount.String() != "12.35" || tx.Type != entity.TypeExpense {
			t.Fatalf("unexpected transaction %+v", tx)
		}
		if !tx.Date.Equal(clk.Now()) || tx.UserID != 1 {
			t.Fatalf("unexpected date/user %+v", tx)
		}
	})

	t.Run("explicit date", func(t *testing.T) {
		tx := mustCreate(t, uc, ctx, CreateTransactionInput{
			Title: "Salary", Amount: decimal.NewFromInt(1000), Type: "income", Category: "Salary", Date: "2026-03-01",
		})

		if !tx.Date.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("Date = %v", tx.Date)
		}
	})

	tests := []struct {
		name  string
		in    CreateTransactionInput
		field string
	}{
		{name: "zero amount", in: CreateTransactionInput{Title: "x", Type: "expense", Category: "Food"}, field: "amount"},
		{name: "negative amount", in: CreateTransactionInput{Title: "x", Amount: decimal.NewFromInt(-5), Type: "expense", Category: "Food"}, field: "amount"},
		{name: "rounds to zero", in: CreateTransactionInput{Title: "x", Amount: decimal.RequireFromString("0.004"), Type: "expense", Category: "Food"}, field: "amount"},
		{name: "missing title", in: CreateTransactionInput{Amount: decimal.NewFromInt(1), Type: "expense", Category: "Food"}, field: "title"},
		{name: "bad type", in: CreateTransactionInput{Title: "x", Amount: decimal.NewFromInt(1), Type: "transfer", Category: "Food"}, field: "type"},
		{name: "missing category", in: CreateTransactionInput{Title: "x", Amount: decimal.NewFromInt(1), Type: "income"}, field: "category"},
		{name: "bad date", in: CreateTransactionInput{Title: "x", Amount: decimal.NewFromInt(1), Type: "income", Category: "Other", Date: "03/01/2026"}, field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateTransaction(ctx, tt.in)

			var ge *goerror.Error
			if !errors.As(err, &ge) || ge.StatusCode() != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
			var fields map[string]string
			var ve validator.V10ValidationError
			if errors.As(err, &ve) {
				fields = ve.Values()
			} else {
				fields = ge.Fields()
			}
			if _, ok := fields[tt.field]; !ok {
				t.Fatalf("expected field %q in %v", tt.field, fields)
			}
		})
	}

	t.Run("requires session", func(t *testing.T) {
		_, err := uc.CreateTransaction(context.Background(), CreateTransactionInput{})
		if statusOf(err) != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})
}

func TestListAndDelete(t *testing.T) {
	uc, clk := newTestUsecase(t)
	ada, bob := asUser(1), asUser(2)

	first := mustCreate(t, uc, ada, CreateTransactionInput{Title: "Rent", Amount: decimal.NewFromInt(900), Type: "expense", Category: "Housing", Date: "2026-03-01"})
	clk.Advance(time.Minute)
	mustCreate(t, uc, ada, CreateTransactionInput{Title: "Pay", Amount: decimal.NewFromInt(3000), Type: "income", Category: "Salary", Date: "2026-03-05"})
	clk.Advance(time.Minute)
	mustCreate(t, uc, ada, CreateTransactionInput{Title: "Pizza", Amount: decimal.NewFromInt(20), Type: "expense", Category: "Food", Date: "2026-03-05"})
	mustCreate(t, uc, bob, CreateTransactionInput{Title: "Bob's", Amount: decimal.NewFromInt(1), Type: "expense", Category: "Food"})

	txs, err := uc.ListTransactions(ada, entity.Filter{})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	got := make([]string, 0, len(txs))
	for _, tx := range txs {
		got = append(got, tx.Title)
	}
	want := []string{"Pizza", "Pay", "Rent"}
	if len(got) != len(want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %v, want %v", got, want)
		}
	}

	txs, _ = uc.ListTransactions(ada, entity.Filter{Type: entity.TypeExpense, StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)})
	if len(txs) != 1 || txs[0].Title != "Pizza" {
		t.Fatalf("filtered = %+v", txs)
	}

	if _, err := uc.ListTransactions(ada, entity.Filter{Type: "transfer"}); statusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("bad type filter: %v", err)
	}

	if err := uc.DeleteTransaction(bob, DeleteTransactionInput{ID: first.ID}); statusOf(err) != http.StatusNotFound {
		t.Fatalf("cross-user delete: %v", err)
	}
	if err := uc.DeleteTransaction(ada, DeleteTransactionInput{ID: first.ID}); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if err := uc.DeleteTransaction(ada, DeleteTransactionInput{ID: first.ID}); statusOf(err) != http.StatusNotFound {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSummaryAndBreakdown(t *testing.T) {
	uc, clk := newTestUsecase(t)
	ctx := asUser(1)

	inputs := []CreateTransactionInput{
		{Title: "Pay", Amount: decimal.RequireFromString("2500.10"), Type: "income", Category: "Salary"},
		{Title: "Groceries", Amount: decimal.RequireFromString("80.25"), Type: "expense", Category: "Food"},
		{Title: "Bus", Amount: decimal.RequireFromString("2.75"), Type: "expense", Category: "Transportation"},
		{Title: "Dinner", Amount: decimal.RequireFromString("19.75"), Type: "expense", Category: "Food"},
	}
	for _, in := range inputs {
		mustCreate(t, uc, ctx, in)
		clk.Advance(time.Hour)
	}

	sum, err := uc.Summary(ctx, entity.Filter{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if sum.TotalIncome.String() != "2500.1" || sum.TotalExpenses.String() != "102.75" || sum.Balance.String() != "2397.35" {
		t.Fatalf("unexpected summary %+v", sum)
	}

	empty, _ := uc.Summary(asUser(9), entity.Filter{})
	if !empty.TotalIncome.IsZero() || !empty.Balance.IsZero() {
		t.Fatalf("empty summary %+v", empty)
	}

	items, err := uc.CategoryBreakdown(ctx, entity.Filter{})
	if err != nil {
		t.Fatalf("CategoryBreakdown() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Name != "Food" || items[0].Value.String() != "100" || items[0].Color != "#0088FE" {
		t.Fatalf("first item %+v", items[0])
	}
	if items[1].Name != "Transportation" || items[1].Value.String() != "2.75" || items[1].Color != "#00C49F" {
		t.Fatalf("second item %+v", items[1])
	}
}

func TestBreakdownPaletteCycles(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var txs []entity.Transaction
	for i := range 13 {
		txs = append(txs, entity.Transaction{
			ID:        int64(i + 1),
			Type:      entity.TypeExpense,
			Category:  string(rune('A' + i)),
			Amount:    decimal.NewFromInt(1),
			Date:      base.Add(time.Duration(i) * time.Hour),
			CreatedAt: base,
		})
	}
	slices.Reverse(txs)

	items := breakdown(txs)

	if len(items) != 13 || items[0].Name != "A" || items[12].Color != entity.Palette[0] || items[11].Color != entity.Palette[11] {
		t.Fatalf("unexpected breakdown %+v", items)
	}
}

func TestBreakdownFollowsRecordingOrder(t *testing.T) {
	// Arrange
	uc, clk := newTestUsecase(t)
	ctx := asUser(1)

	// recorded first but dated last
	mustCreate(t, uc, ctx, CreateTransactionInput{Title: "Rent", Amount: decimal.NewFromInt(900), Type: "expense", Category: "Housing", Date: "2026-03-20"})
	clk.Advance(time.Minute)
	mustCreate(t, uc, ctx, CreateTransactionInput{Title: "Cinema", Amount: decimal.NewFromInt(12), Type: "expense", Category: "Entertainment", Date: "2026-03-02"})
	clk.Advance(time.Minute)
	mustCreate(t, uc, ctx, CreateTransactionInput{Title: "Lunch", Amount: decimal.NewFromInt(8), Type: "expense", Category: "Food", Date: "2026-03-01"})

	// Act
	items, err := uc.CategoryBreakdown(ctx, entity.Filter{})

	// Assert
	if err != nil {
		t.Fatalf("CategoryBreakdown() error = %v", err)
	}
	got := lo.Map(items, func(c entity.CategoryBreakdown, _ int) string { return c.Name + " " + c.Color })
	want := []string{"Housing #0088FE", "Entertainment #00C49F", "Food #FFBB28"}
	if !slices.Equal(got, want) {
		t.Fatalf("breakdown = %v, want %v", got, want)
	}
}

func TestListCategories(t *testing.T) {
	uc, _ := newTestUsecase(t)

	got := uc.ListCategories(context.Background())
	got[0] = "mutated"

	if entity.Categories[0] != "Food" || len(got) != 8 {
		t.Fatalf("categories = %v", entity.Categories)
	}
}
