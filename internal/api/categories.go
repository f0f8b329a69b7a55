package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

// ListCategories returns all categories as one flat slice. The backend
// answers either {"categories": {"income": [...], "expense": [...]}},
// {"categories": [...]} or a bare array depending on route version.
func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &raw); err != nil {
		return nil, err
	}
	return flattenCategories(raw)
}

func flattenCategories(data json.RawMessage) ([]core.Category, error) {
	trimmed := bytes.TrimSpace(data)
	categories := []core.Category{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return categories, nil
	}
	if trimmed[0] == '[' {
		err := json.Unmarshal(trimmed, &categories)
		return categories, err
	}

	var wrapper struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	inner := bytes.TrimSpace(wrapper.Categories)
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return categories, nil
	}
	if inner[0] == '[' {
		err := json.Unmarshal(inner, &categories)
		return categories, err
	}

	var grouped struct {
		Income  []core.Category `json:"income"`
		Expense []core.Category `json:"expense"`
	}
	if err := json.Unmarshal(inner, &grouped); err != nil {
		return nil, err
	}
	categories = append(categories, grouped.Income...)
	categories = append(categories, grouped.Expense...)
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, in core.CategoryInput) (core.Category, error) {
	var category core.Category
	if err := in.Validate(); err != nil {
		return category, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/categories", nil, in, &raw); err != nil {
		return category, err
	}
	err := unwrapField(raw, "category", &category)
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in core.CategoryInput) (core.Category, error) {
	var category core.Category
	if err := in.Validate(); err != nil {
		return category, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/categories/"+id, nil, in, &raw); err != nil {
		return category, err
	}
	err := unwrapField(raw, "category", &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil, nil)
}

// InitializeCategories asks the backend to seed its default category
// set. Repeating the call fails server-side with an "already exist"
// message; that is reported as ErrAlreadySeeded so callers can treat it
// as a no-op instead of a failure.
func (c *Client) InitializeCategories(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/categories/initialize", nil, nil, nil)
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusConflict ||
			strings.Contains(strings.ToLower(apiErr.Message), "already exist") {
			return ErrAlreadySeeded
		}
	}
	return err
}
