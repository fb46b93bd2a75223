package inbound

import (
	"context"

	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/budget/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
)

type uc interface {
	ListTransactions(ctx context.Context, f entity.Filter) ([]entity.Transaction, error)
	CreateTransaction(ctx context.Context, in usecase.CreateTransactionInput) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, in usecase.DeleteTransactionInput) error
	Summary(ctx context.Context, f entity.Filter) (*entity.Summary, error)
	CategoryBreakdown(ctx context.Context, f entity.Filter) ([]entity.CategoryBreakdown, error)
	ListCategories(ctx context.Context) []string
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/transactions", end.ListTransactions)
	r.POST("/api/transactions", end.CreateTransaction)
	r.DELETE("/api/transactions/:id", end.DeleteTransaction)
	r.GET("/api/transactions/summary", end.Summary)
	r.GET("/api/transactions/categories", end.CategoryBreakdown)
	r.GET("/api/categories", end.ListCategories)
}
