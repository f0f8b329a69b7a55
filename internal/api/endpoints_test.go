package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestLogin(t *testing.T) {
	var gotBody core.LoginInput
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ada","email":"ada@example.com"}}`))
	}, "")

	session, err := c.Login(context.Background(), core.LoginInput{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token != "tok-1" || session.User.ID != "u1" {
		t.Fatalf("session: %+v", session)
	}
	if gotBody.Email != "ada@example.com" {
		t.Fatalf("body: %+v", gotBody)
	}
}

func TestLoginRejectsInvalidInputLocally(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the server")
	}, "")
	if _, err := c.Login(context.Background(), core.LoginInput{Email: "nope"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestListAccountsShapes(t *testing.T) {
	bodies := []string{
		`[{"_id":"a1","name":"Main","isActive":true}]`,
		`{"accounts":[{"_id":"a1","name":"Main","isActive":true}]}`,
	}
	for _, body := range bodies {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}, "t")
		accounts, err := c.ListAccounts(context.Background())
		if err != nil {
			t.Fatalf("body %s: %v", body, err)
		}
		if len(accounts) != 1 || accounts[0].ID != "a1" {
			t.Fatalf("body %s: got %+v", body, accounts)
		}
	}
}

func TestListTransactionsForwardsFilter(t *testing.T) {
	var got url.Values
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"transactions":[{"_id":"t1"}],"pagination":{"total":1}}`))
	}, "t")

	f := core.FilterSpec{
		Search:    "rent",
		Type:      core.Expense,
		AccountID: "acc-1",
		StartDate: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
	}
	transactions, err := c.ListTransactions(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 1 || transactions[0].ID != "t1" {
		t.Fatalf("got %+v", transactions)
	}
	if got.Get("search") != "rent" || got.Get("type") != "expense" || got.Get("account") != "acc-1" {
		t.Fatalf("query: %v", got)
	}
	if got.Get("startDate") != "2024-03-01" {
		t.Fatalf("startDate: got %q", got.Get("startDate"))
	}
	if got.Has("endDate") || got.Has("category") || got.Has("division") {
		t.Fatalf("unset criteria leaked into query: %v", got)
	}
}

func TestCreateTransactionUnwraps(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"created","transaction":{"_id":"t9","type":"expense","amount":12.5}}`))
	}, "t")

	in := core.TransactionInput{
		Type:        core.Expense,
		Amount:      12.5,
		Description: "coffee",
		Date:        time.Now(),
		CategoryID:  "cat-1",
		AccountID:   "acc-1",
		Division:    core.Personal,
	}
	tx, err := c.CreateTransaction(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != "t9" || tx.Amount != 12.5 {
		t.Fatalf("got %+v", tx)
	}
}

func TestInitializeCategoriesAlreadySeeded(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"conflict status", http.StatusConflict, `{"message":"duplicate"}`},
		{"message match", http.StatusBadRequest, `{"message":"Default categories already exist"}`},
	}
	for _, tc := range cases {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}, "t")
		err := c.InitializeCategories(context.Background())
		if !errors.Is(err, ErrAlreadySeeded) {
			t.Fatalf("%s: got %v, want ErrAlreadySeeded", tc.name, err)
		}
	}
}

func TestInitializeCategoriesOtherFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"db down"}`))
	}, "t")
	err := c.InitializeCategories(context.Background())
	if err == nil || errors.Is(err, ErrAlreadySeeded) {
		t.Fatalf("got %v, want a plain failure", err)
	}
}

func TestSummaryAndTrends(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard/summary":
			if r.URL.Query().Get("period") != "monthly" {
				t.Errorf("period: %q", r.URL.Query().Get("period"))
			}
			w.Write([]byte(`{"income":{"total":100},"expense":{"total":40},"categoryBreakdown":[],"recentTransactions":[]}`))
		case "/dashboard/trends":
			w.Write([]byte(`{"data":[{"bucket":"1/2024","type":"income","total":100}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, "t")

	summary, err := c.Summary(context.Background(), "monthly")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Income.Total != 100 || summary.Expense.Total != 40 {
		t.Fatalf("summary: %+v", summary)
	}

	rows, err := c.Trends(context.Background(), "monthly")
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(rows) != 1 || rows[0].Bucket != "1/2024" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestAccountsOverview(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accounts":[{"_id":"a1","balance":80,"isActive":true},{"_id":"a2","balance":20,"isActive":false}]}`))
	}, "t")

	overview, err := c.AccountsOverview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.Accounts) != 2 {
		t.Fatalf("accounts: %+v", overview.Accounts)
	}
	// No backend total, so only the active balance counts.
	if overview.TotalBalance != 80 {
		t.Fatalf("total: got %v, want 80", overview.TotalBalance)
	}
}
