package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Categories is the fixed list offered to clients.
var Categories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Entertainment",
	"Shopping",
	"Salary",
	"Freelance",
	"Other",
}

// Palette colours expense categories in first-seen order, cycling.
var Palette = []string{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042",
	"#A4DE6C", "#D0ED57", "#8884D8", "#FF6B6B",
	"#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
}

type Transaction struct {
	ID        int64
	UserID    int64
	Title     string
	Amount    decimal.Decimal
	Type      TransactionType
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

// Filter narrows a transaction list. Zero fields match everything and set
// fields combine conjunctively. EndDate is inclusive of the whole day.
type Filter struct {
	Query     string
	Category  string
	Type      TransactionType
	StartDate time.Time
	EndDate   time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

func (f Filter) Match(t Transaction) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if !f.StartDate.IsZero() && t.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && !t.Date.Before(f.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}

	return true
}

type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

type CategoryBreakdown struct {
	Name  string
	Value decimal.Decimal
	Color string
}
