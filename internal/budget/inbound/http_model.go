package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"number"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date,omitempty"`
}

type TransactionResponse struct {
	ID        int64     `json:"id,string"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func newTransactionResponse(t entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Title:     t.Title,
		Amount:    t.Amount.InexactFloat64(),
		Type:      string(t.Type),
		Category:  t.Category,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}

type ListTransactionsResponse []TransactionResponse

func (l ListTransactionsResponse) Meta() map[string]any {
	return map[string]any{"total": len(l)}
}

type CreateTransactionResponse struct {
	TransactionResponse
}

func (CreateTransactionResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateTransactionResponse) Message() string {
	return "Transaction created"
}

type DeleteTransactionResponse struct{}

func (DeleteTransactionResponse) StatusCode() int {
	return http.StatusNoContent
}

type SummaryResponse struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
}

type CategoryBreakdownResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type ListCategoriesResponse []string
