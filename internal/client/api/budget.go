package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type Transaction struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransaction is the create payload. Amount is sent as a decimal string.
type NewTransaction struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Date     string `json:"date,omitempty"`
}

// Filter maps to the list query parameters. Empty fields are omitted.
type Filter struct {
	Query     string
	Category  string
	Type      string
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
}

func (f Filter) values() url.Values {
	v := url.Values{}
	for key, val := range map[string]string{
		"q":          f.Query,
		"category":   f.Category,
		"type":       f.Type,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
		"min_amount": f.MinAmount,
		"max_amount": f.MaxAmount,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
}

type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

func (c *Client) Transactions(ctx context.Context, f Filter) ([]Transaction, error) {
	var out []Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", f.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddTransaction(ctx context.Context, in NewTransaction) (*Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) Summary(ctx context.Context, f Filter) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/transactions/summary", f.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories returns the expense breakdown by category.
func (c *Client) Categories(ctx context.Context, f Filter) ([]CategoryTotal, error) {
	var out []CategoryTotal
	if err := c.do(ctx, http.MethodGet, "/transactions/categories", f.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryList returns the selectable categories.
func (c *Client) CategoryList(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
