package state

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Transactions holds the fetched transaction list plus the local
// filter/sort spec, and answers page views through the core pipeline.
type Transactions struct {
	api      TransactionsAPI
	logger   *log.Logger
	pageSize int

	mu           sync.Mutex
	transactions []core.Transaction
	filter       core.FilterSpec
	sort         core.SortSpec
	loading      bool
	err          error
	seq          uint64
}

type TransactionsSnapshot struct {
	Transactions []core.Transaction
	Filter       core.FilterSpec
	Sort         core.SortSpec
	Loading      bool
	Err          error
}

func NewTransactions(transactionsAPI TransactionsAPI, pageSize int, logger *log.Logger) *Transactions {
	if pageSize <= 0 {
		pageSize = core.DefaultPageSize
	}
	if logger == nil {
		logger = log.New(log.ComponentState, log.Config{})
	}
	return &Transactions{
		api:      transactionsAPI,
		logger:   logger,
		pageSize: pageSize,
		sort:     core.SortSpec{Field: core.SortByDate, Direction: core.Desc},
	}
}

func (s *Transactions) Snapshot() TransactionsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return TransactionsSnapshot{
		Transactions: out,
		Filter:       s.filter,
		Sort:         s.sort,
		Loading:      s.loading,
		Err:          s.err,
	}
}

// Load fetches transactions with the given server-side filter and
// adopts it as the local filter. Overlapping loads resolve to the most
// recently issued one.
func (s *Transactions) Load(ctx context.Context, f core.FilterSpec) error {
	seq := s.begin()
	transactions, err := s.api.ListTransactions(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.DebugContext(ctx, "dropping superseded transactions response", log.FieldSeq, seq)
		return err
	}
	s.loading = false
	s.err = err
	if err == nil {
		s.transactions = transactions
		s.filter = f
	}
	return err
}

// SetFilter narrows the local view without refetching.
func (s *Transactions) SetFilter(f core.FilterSpec) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// ClearFilter resets the local view to the full fetched list.
func (s *Transactions) ClearFilter() {
	s.mu.Lock()
	s.filter = core.FilterSpec{}
	s.mu.Unlock()
}

// SetSort changes the ordering of subsequent page views.
func (s *Transactions) SetSort(spec core.SortSpec) {
	s.mu.Lock()
	s.sort = spec
	s.mu.Unlock()
}

// Page runs the pipeline over the current list and returns the page,
// clamped to [1, totalPages] so callers always see a renderable view.
func (s *Transactions) Page(page int) core.PageView {
	s.mu.Lock()
	transactions := make([]core.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	q := core.Query{Filter: s.filter, Sort: s.sort, Page: page, PageSize: s.pageSize}
	s.mu.Unlock()

	// Clamp here; the pipeline itself reports out-of-range pages empty.
	filtered := core.Filter(transactions, q.Filter)
	totalPages := (len(filtered) + q.PageSize - 1) / q.PageSize
	if q.Page < 1 {
		q.Page = 1
	}
	if totalPages > 0 && q.Page > totalPages {
		q.Page = totalPages
	}
	core.SortTransactions(filtered, q.Sort)
	return core.Paginate(filtered, q.Page, q.PageSize)
}

// Create posts the transaction and prepends the created record, the
// way the reference UI shows the newest entry first.
func (s *Transactions) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	transaction, err := s.api.CreateTransaction(ctx, in)
	if err != nil {
		s.fail(err)
		return core.Transaction{}, err
	}
	s.mu.Lock()
	s.transactions = append([]core.Transaction{transaction}, s.transactions...)
	s.err = nil
	s.mu.Unlock()
	return transaction, nil
}

func (s *Transactions) Update(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error) {
	transaction, err := s.api.UpdateTransaction(ctx, id, in)
	if err != nil {
		s.fail(err)
		return core.Transaction{}, err
	}
	s.mu.Lock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i] = transaction
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	return transaction, nil
}

func (s *Transactions) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Get returns the local copy of one transaction.
func (s *Transactions) Get(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Totals sums the currently filtered view by type.
func (s *Transactions) Totals() map[core.TransactionType]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.TotalsByType(core.Filter(s.transactions, s.filter))
}

func (s *Transactions) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	s.err = nil
	return s.seq
}

func (s *Transactions) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
