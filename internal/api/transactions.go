package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"fintrack/internal/core"
)

const dateParam = "2006-01-02"

// ListTransactions fetches transactions, forwarding any set filter
// criteria as query parameters. The full (server-filtered) list comes
// back; local narrowing stays with the core pipeline.
func (c *Client) ListTransactions(ctx context.Context, f core.FilterSpec) ([]core.Transaction, error) {
	query := url.Values{}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Type != "" {
		query.Set("type", string(f.Type))
	}
	if f.CategoryID != "" {
		query.Set("category", f.CategoryID)
	}
	if f.AccountID != "" {
		query.Set("account", f.AccountID)
	}
	if f.Division != "" {
		query.Set("division", string(f.Division))
	}
	if !f.StartDate.IsZero() {
		query.Set("startDate", f.StartDate.Format(dateParam))
	}
	if !f.EndDate.IsZero() {
		query.Set("endDate", f.EndDate.Format(dateParam))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &raw); err != nil {
		return nil, err
	}
	transactions := []core.Transaction{}
	if err := unwrapList(raw, "transactions", &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var transaction core.Transaction
	if err := in.Validate(); err != nil {
		return transaction, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &raw); err != nil {
		return transaction, err
	}
	err := unwrapField(raw, "transaction", &transaction)
	return transaction, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error) {
	var transaction core.Transaction
	if err := in.Validate(); err != nil {
		return transaction, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/transactions/"+id, nil, in, &raw); err != nil {
		return transaction, err
	}
	err := unwrapField(raw, "transaction", &transaction)
	return transaction, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil, nil)
}
