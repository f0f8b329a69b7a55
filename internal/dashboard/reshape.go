// Package dashboard reshapes the backend's summary and trend payloads
// into the flat, chart-ready types the presentation layer consumes.
// Everything here is a pure transformation over decoded payloads.
package dashboard

import (
	"fintrack/internal/core"
)

// Range tokens accepted from the UI and their backend counterparts.
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

// BackendPeriod maps a UI range token to the backend's period
// identifier. Unrecognized tokens fall back to monthly.
func BackendPeriod(rangeToken string) string {
	switch rangeToken {
	case RangeWeek:
		return "weekly"
	case RangeYear:
		return "yearly"
	default:
		return "monthly"
	}
}

type (
	// SummaryPayload is the wire shape of GET /dashboard/summary.
	// Totals are nested per type; a top-level net is optional and,
	// when the backend supplies one, authoritative.
	SummaryPayload struct {
		Income struct {
			Total float64 `json:"total"`
		} `json:"income"`
		Expense struct {
			Total float64 `json:"total"`
		} `json:"expense"`
		Net                *float64                 `json:"net,omitempty"`
		CategoryBreakdown  []core.CategoryBreakdown `json:"categoryBreakdown"`
		RecentTransactions []core.Transaction       `json:"recentTransactions"`
	}

	// TrendRow is one backend aggregation row: a (bucket, type) pair.
	// A bucket with activity of both types arrives as two rows.
	TrendRow struct {
		Bucket string  `json:"bucket"`
		Type   string  `json:"type"`
		Total  float64 `json:"total"`
	}
)

// ReshapeSummary flattens the summary payload and merges in the total
// balance from the independently fetched accounts overview. Net comes
// from the backend when present, otherwise income minus expenses; the
// savings rate is derived from that net and is 0 whenever income is 0.
func ReshapeSummary(p SummaryPayload, overview core.AccountsOverview) core.DashboardSummary {
	income := p.Income.Total
	expenses := p.Expense.Total

	net := income - expenses
	if p.Net != nil {
		net = *p.Net
	}

	var savingsRate float64
	if income > 0 {
		savingsRate = net / income * 100
	}

	breakdown := p.CategoryBreakdown
	if breakdown == nil {
		breakdown = []core.CategoryBreakdown{}
	}
	recent := p.RecentTransactions
	if recent == nil {
		recent = []core.Transaction{}
	}

	return core.DashboardSummary{
		Income:             income,
		Expenses:           expenses,
		Net:                net,
		SavingsRate:        savingsRate,
		TotalBalance:       overview.TotalBalance,
		CategoryBreakdown:  breakdown,
		RecentTransactions: recent,
	}
}

// ReshapeTrends groups rows by bucket in first-seen order and
// accumulates each row's total into the slot matching its type. A
// bucket that only saw one type keeps 0 in the other slot. Unknown row
// types are dropped.
func ReshapeTrends(rows []TrendRow) []core.TrendEntry {
	entries := make([]core.TrendEntry, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		tt := core.TransactionType(row.Type)
		if tt != core.Income && tt != core.Expense {
			continue
		}
		i, ok := index[row.Bucket]
		if !ok {
			i = len(entries)
			index[row.Bucket] = i
			entries = append(entries, core.TrendEntry{Period: row.Bucket})
		}
		if tt == core.Income {
			entries[i].Income += row.Total
		} else {
			entries[i].Expenses += row.Total
		}
	}
	return entries
}

// ReshapeOverview builds the accounts overview, trusting a
// backend-supplied total when present and otherwise summing active
// account balances.
func ReshapeOverview(accounts []core.Account, total *float64) core.AccountsOverview {
	if accounts == nil {
		accounts = []core.Account{}
	}
	overview := core.AccountsOverview{Accounts: accounts}
	if total != nil {
		overview.TotalBalance = *total
	} else {
		overview.TotalBalance = core.TotalBalance(accounts)
	}
	return overview
}
