package api

import (
	"context"
	"encoding/json"
	"net/http"

	"fintrack/internal/core"
)

// ListAccounts returns all accounts, tolerating both the wrapped
// {"accounts": [...]} shape and a bare array.
func (c *Client) ListAccounts(ctx context.Context) ([]core.Account, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &raw); err != nil {
		return nil, err
	}
	accounts := []core.Account{}
	if err := unwrapList(raw, "accounts", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error) {
	var account core.Account
	if err := in.Validate(); err != nil {
		return account, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/accounts", nil, in, &raw); err != nil {
		return account, err
	}
	err := unwrapField(raw, "account", &account)
	return account, err
}

func (c *Client) UpdateAccount(ctx context.Context, id string, in core.AccountInput) (core.Account, error) {
	var account core.Account
	if err := in.Validate(); err != nil {
		return account, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/accounts/"+id, nil, in, &raw); err != nil {
		return account, err
	}
	err := unwrapField(raw, "account", &account)
	return account, err
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+id, nil, nil, nil)
}
