package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/budget/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func parseFilter(r *router.Request) (entity.Filter, error) {
	startDate, err := r.GetQueryDate("start_date", time.DateOnly)
	if err != nil {
		return entity.Filter{}, err
	}

	endDate, err := r.GetQueryDate("end_date", time.DateOnly)
	if err != nil {
		return entity.Filter{}, err
	}

	minAmount, err := r.GetQueryDecimal("min_amount")
	if err != nil {
		return entity.Filter{}, err
	}

	maxAmount, err := r.GetQueryDecimal("max_amount")
	if err != nil {
		return entity.Filter{}, err
	}

	return entity.Filter{
		Query:     r.GetQuery("q"),
		Category:  r.GetQuery("category"),
		Type:      entity.TransactionType(r.GetQuery("type")),
		StartDate: startDate,
		EndDate:   endDate,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
	}, nil
}

// ListTransactions lists the user's transactions, newest first.
// @Summary List transactions
// @Tags Budget
// @Produce json
// @Param q query string false "Title contains"
// @Param category query string false "Category"
// @Param type query string false "income or expense"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD, inclusive"
// @Param min_amount query number false "Minimum amount"
// @Param max_amount query number false "Maximum amount"
// @Success 200 {object} router.successResponse{data=[]TransactionResponse} "Transactions"
// @Failure 400 {object} router.errorResponse "Invalid query"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/transactions [get]
func (h *HTTPEndpoint) ListTransactions(r *router.Request) (any, error) {
	f, err := parseFilter(r)
	if err != nil {
		return nil, err
	}

	txs, err := h.uc.ListTransactions(r.Context(), f)
	if err != nil {
		return nil, err
	}

	return ListTransactionsResponse(lo.Map(txs, func(t entity.Transaction, _ int) TransactionResponse {
		return newTransactionResponse(t)
	})), nil
}

// CreateTransaction records an income or expense.
// @Summary Create transaction
// @Tags Budget
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction payload"
// @Success 201 {object} router.successResponse{data=TransactionResponse} "Created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/transactions [post]
func (h *HTTPEndpoint) CreateTransaction(r *router.Request) (any, error) {
	var req CreateTransactionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	t, err := h.uc.CreateTransaction(r.Context(), usecase.CreateTransactionInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		return nil, err
	}

	return CreateTransactionResponse{newTransactionResponse(*t)}, nil
}

// DeleteTransaction removes one of the user's transactions.
// @Summary Delete transaction
// @Tags Budget
// @Param id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 400 {object} router.errorResponse "Invalid id"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Transaction not found"
// @Router /api/transactions/{id} [delete]
func (h *HTTPEndpoint) DeleteTransaction(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteTransaction(r.Context(), usecase.DeleteTransactionInput{ID: id}); err != nil {
		return nil, err
	}

	return DeleteTransactionResponse{}, nil
}

// Summary totals the filtered transactions.
// @Summary Transaction summary
// @Tags Budget
// @Produce json
// @Success 200 {object} router.successResponse{data=SummaryResponse} "Summary"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/transactions/summary [get]
func (h *HTTPEndpoint) Summary(r *router.Request) (any, error) {
	f, err := parseFilter(r)
	if err != nil {
		return nil, err
	}

	sum, err := h.uc.Summary(r.Context(), f)
	if err != nil {
		return nil, err
	}

	return SummaryResponse{
		TotalIncome:   sum.TotalIncome.InexactFloat64(),
		TotalExpenses: sum.TotalExpenses.InexactFloat64(),
		Balance:       sum.Balance.InexactFloat64(),
	}, nil
}

// CategoryBreakdown groups filtered expenses by category.
// @Summary Expense breakdown
// @Tags Budget
// @Produce json
// @Success 200 {object} router.successResponse{data=[]CategoryBreakdownResponse} "Breakdown"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/transactions/categories [get]
func (h *HTTPEndpoint) CategoryBreakdown(r *router.Request) (any, error) {
	f, err := parseFilter(r)
	if err != nil {
		return nil, err
	}

	items, err := h.uc.CategoryBreakdown(r.Context(), f)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c entity.CategoryBreakdown, _ int) CategoryBreakdownResponse {
		return CategoryBreakdownResponse{Name: c.Name, Value: c.Value.InexactFloat64(), Color: c.Color}
	}), nil
}

// ListCategories returns the selectable categories.
// @Summary Categories
// @Tags Budget
// @Produce json
// @Success 200 {object} router.successResponse{data=[]string} "Categories"
// @Router /api/categories [get]
func (h *HTTPEndpoint) ListCategories(r *router.Request) (any, error) {
	return ListCategoriesResponse(h.uc.ListCategories(r.Context())), nil
}
