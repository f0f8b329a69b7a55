// Package core holds the domain model and the pure derived-view logic:
// the transaction filter/sort/paginate pipeline and the helpers the
// presentation layer reads. Nothing here performs I/O.
package core

import (
	"sort"
	"strings"
	"time"
)

const (
	SortByDate   SortField = "date"
	SortByType   SortField = "type"
	SortByAmount SortField = "amount"

	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// DefaultPageSize matches the transaction table of the reference UI.
const DefaultPageSize = 10

type (
	SortField     string
	SortDirection string

	// FilterSpec selects transactions. Zero-valued criteria impose no
	// constraint; there is no way to express an invalid filter.
	FilterSpec struct {
		Search     string // case-insensitive substring of description
		Type       TransactionType
		CategoryID string
		AccountID  string
		Division   Division
		StartDate  time.Time // inclusive from 00:00 of its day
		EndDate    time.Time // inclusive through the end of its day
	}

	SortSpec struct {
		Field     SortField
		Direction SortDirection
	}

	// Query is one full page request against the in-memory list.
	Query struct {
		Filter   FilterSpec
		Sort     SortSpec
		Page     int // 1-based
		PageSize int
	}

	// PageView is what the view renders: one page plus the counts the
	// pager needs.
	PageView struct {
		Items      []Transaction
		Total      int // filtered-and-sorted count
		TotalPages int
		Page       int
		PageSize   int
	}
)

// Matches reports whether the transaction satisfies every supplied
// criterion.
func (f FilterSpec) Matches(t Transaction) bool {
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Division != "" && t.Division != f.Division {
		return false
	}
	if !f.StartDate.IsZero() {
		start := dayStart(f.StartDate)
		if t.Date.Before(start) {
			return false
		}
	}
	if !f.EndDate.IsZero() {
		// Inclusive through the whole end day.
		if !t.Date.Before(dayStart(f.EndDate).AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

// Apply runs filter, sort and pagination in that order and returns the
// requested page. It never mutates its input and is deterministic for
// identical inputs; an out-of-range page yields an empty Items slice
// with the counts intact.
func Apply(transactions []Transaction, q Query) PageView {
	filtered := Filter(transactions, q.Filter)
	SortTransactions(filtered, q.Sort)
	return Paginate(filtered, q.Page, q.PageSize)
}

// Filter returns the transactions matching the spec, preserving their
// relative order. The result is always a fresh slice.
func Filter(transactions []Transaction, f FilterSpec) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTransactions orders the slice in place by the spec's field and
// direction. Ties keep their original relative order. An empty field
// leaves the slice untouched.
func SortTransactions(transactions []Transaction, s SortSpec) {
	if s.Field == "" {
		return
	}
	less := func(a, b Transaction) bool {
		switch s.Field {
		case SortByType:
			return a.Type < b.Type
		case SortByAmount:
			return a.Amount < b.Amount
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		if s.Direction == Desc {
			return less(transactions[j], transactions[i])
		}
		return less(transactions[i], transactions[j])
	})
}

// Paginate slices out the 1-based page. Page size defaults to
// DefaultPageSize when non-positive.
func Paginate(transactions []Transaction, page, pageSize int) PageView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(transactions)
	totalPages := (total + pageSize - 1) / pageSize

	view := PageView{
		Items:      []Transaction{},
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
	if page < 1 || page > totalPages {
		return view
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	view.Items = transactions[start:end]
	return view
}

// TotalsByType sums amounts per transaction type.
func TotalsByType(transactions []Transaction) map[TransactionType]float64 {
	totals := make(map[TransactionType]float64, 3)
	for _, t := range transactions {
		totals[t.Type] += t.Amount
	}
	return totals
}

// Net is total income minus total expenses; transfers are neutral.
func Net(transactions []Transaction) float64 {
	totals := TotalsByType(transactions)
	return totals[Income] - totals[Expense]
}

// ByType returns the transactions of one type, in order.
func ByType(transactions []Transaction, tt TransactionType) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if t.Type == tt {
			out = append(out, t)
		}
	}
	return out
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
