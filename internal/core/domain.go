package core

import (
	"errors"
	"time"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	Personal Division = "personal"
	Office   Division = "office"
)

const (
	Daily   RecurringPattern = "daily"
	Weekly  RecurringPattern = "weekly"
	Monthly RecurringPattern = "monthly"
	Yearly  RecurringPattern = "yearly"
)

const (
	Savings    AccountType = "savings"
	Checking   AccountType = "checking"
	Cash       AccountType = "cash"
	Credit     AccountType = "credit"
	Investment AccountType = "investment"
	Other      AccountType = "other"
)

// EditWindow is how long after its date a transaction stays editable.
// The backend enforces the same window; the client mirrors it so the UI
// can disable edit controls without a round trip.
const EditWindow = 12 * time.Hour

type (
	TransactionType  string
	Division         string
	RecurringPattern string
	AccountType      string

	// Transaction is a read-through copy of a remote transaction.
	// The backend owns the record; the client never invents IDs.
	Transaction struct {
		ID               string           `json:"_id"`
		Type             TransactionType  `json:"type"`
		Amount           float64          `json:"amount"`
		Description      string           `json:"description"`
		Date             time.Time        `json:"date"`
		CategoryID       string           `json:"category,omitempty"`
		AccountID        string           `json:"account"`
		ToAccountID      string           `json:"toAccount,omitempty"`
		Division         Division         `json:"division"`
		Tags             []string         `json:"tags,omitempty"`
		IsRecurring      bool             `json:"isRecurring"`
		RecurringPattern RecurringPattern `json:"recurringPattern,omitempty"`
	}

	Account struct {
		ID       string      `json:"_id"`
		Name     string      `json:"name"`
		Type     AccountType `json:"type"`
		Balance  float64     `json:"balance"`
		Currency string      `json:"currency"`
		IsActive bool        `json:"isActive"`
	}

	Category struct {
		ID        string          `json:"_id"`
		Name      string          `json:"name"`
		Icon      string          `json:"icon"`
		Type      TransactionType `json:"type"` // income or expense, never transfer
		IsActive  bool            `json:"isActive"`
		IsDefault bool            `json:"isDefault"`
	}

	User struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// CategoryBreakdown is one slice of the dashboard spending pie.
	// Percentages across a summary's entries add up to ~100.
	CategoryBreakdown struct {
		Category   string  `json:"category"`
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// DashboardSummary is the flat, presentation-ready summary shape.
	// Produced by the dashboard package, never decoded directly.
	DashboardSummary struct {
		Income             float64
		Expenses           float64
		Net                float64
		SavingsRate        float64 // percent, 0 when income is 0
		TotalBalance       float64
		CategoryBreakdown  []CategoryBreakdown
		RecentTransactions []Transaction
	}

	// TrendEntry is one period bucket of the income-vs-expense series.
	TrendEntry struct {
		Period   string
		Income   float64
		Expenses float64
	}

	AccountsOverview struct {
		Accounts     []Account
		TotalBalance float64
	}
)

var (
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrEmptyDescription    = errors.New("empty description")
	ErrMissingCategory     = errors.New("category is required for income and expense")
	ErrUnexpectedCategory  = errors.New("transfers cannot carry a category")
	ErrMissingToAccount    = errors.New("transfers require a destination account")
	ErrUnexpectedToAccount = errors.New("only transfers carry a destination account")
	ErrSameAccount         = errors.New("transfer destination must differ from source")
	ErrMissingPattern      = errors.New("recurring transactions require a pattern")
)

// Savings is the per-bucket difference consumers derive from a trend
// entry; it is intentionally not stored on TrendEntry.
func (e TrendEntry) Savings() float64 {
	return e.Income - e.Expenses
}

// Editable reports whether the transaction can still be modified at
// the given instant.
func (t Transaction) Editable(now time.Time) bool {
	return now.Sub(t.Date) <= EditWindow
}

// TotalBalance sums the balances of active accounts. Inactive accounts
// are excluded even when their balance is non-zero.
func TotalBalance(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		if a.IsActive {
			total += a.Balance
		}
	}
	return total
}
