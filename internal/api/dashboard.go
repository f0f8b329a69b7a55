package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"fintrack/internal/core"
	"fintrack/internal/dashboard"
)

// Summary fetches the raw dashboard summary for a backend period token
// (weekly/monthly/yearly). Reshaping is the dashboard package's job.
func (c *Client) Summary(ctx context.Context, period string) (dashboard.SummaryPayload, error) {
	var payload dashboard.SummaryPayload
	query := url.Values{"period": {period}}
	err := c.do(ctx, http.MethodGet, "/dashboard/summary", query, nil, &payload)
	return payload, err
}

// Trends fetches the raw per-(bucket, type) trend rows for a backend
// period token, tolerating {"data": [...]} and bare-array shapes.
func (c *Client) Trends(ctx context.Context, period string) ([]dashboard.TrendRow, error) {
	query := url.Values{"period": {period}}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/dashboard/trends", query, nil, &raw); err != nil {
		return nil, err
	}
	rows := []dashboard.TrendRow{}
	if err := unwrapList(raw, "data", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AccountsOverview fetches the accounts overview. The total balance is
// taken from the payload when supplied and otherwise computed from the
// active accounts.
func (c *Client) AccountsOverview(ctx context.Context) (core.AccountsOverview, error) {
	var payload struct {
		Accounts     []core.Account `json:"accounts"`
		TotalBalance *float64       `json:"totalBalance,omitempty"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/accounts", nil, nil, &payload); err != nil {
		return core.AccountsOverview{}, err
	}
	return dashboard.ReshapeOverview(payload.Accounts, payload.TotalBalance), nil
}
