// Package state holds the client-side request-state containers: auth,
// accounts, categories, transactions and dashboard. Each container is
// an explicit, injectable holder of remote data plus loading/error
// flags, exposing a snapshot type and a closed set of operations.
//
// Containers never share memory with callers: snapshots copy slices.
// Every load is tagged with a monotonically increasing sequence number
// and a response that has been superseded by a later load is dropped,
// so the container always reflects the most recent intent. A failed
// load records its error but leaves the previously loaded data intact.
package state

import (
	"context"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/dashboard"
)

// The containers consume narrow views of the API client so tests can
// substitute httptest-backed or hand-rolled fakes.
type (
	AuthAPI interface {
		Signup(ctx context.Context, in core.SignupInput) (api.Session, error)
		Login(ctx context.Context, in core.LoginInput) (api.Session, error)
		Me(ctx context.Context) (core.User, error)
	}

	AccountsAPI interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
		CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error)
		UpdateAccount(ctx context.Context, id string, in core.AccountInput) (core.Account, error)
		DeleteAccount(ctx context.Context, id string) error
	}

	CategoriesAPI interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, in core.CategoryInput) (core.Category, error)
		UpdateCategory(ctx context.Context, id string, in core.CategoryInput) (core.Category, error)
		DeleteCategory(ctx context.Context, id string) error
		InitializeCategories(ctx context.Context) error
	}

	TransactionsAPI interface {
		ListTransactions(ctx context.Context, f core.FilterSpec) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	DashboardAPI interface {
		Summary(ctx context.Context, period string) (dashboard.SummaryPayload, error)
		Trends(ctx context.Context, period string) ([]dashboard.TrendRow, error)
		AccountsOverview(ctx context.Context) (core.AccountsOverview, error)
	}

	// SessionStore is what the auth container needs from the durable
	// session layer.
	SessionStore interface {
		Save(ctx context.Context, token string, user core.User) error
		Clear(ctx context.Context) error
	}
)
