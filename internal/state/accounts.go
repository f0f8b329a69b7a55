package state

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Accounts holds the account list.
type Accounts struct {
	api    AccountsAPI
	logger *log.Logger

	mu       sync.Mutex
	accounts []core.Account
	loading  bool
	err      error
	seq      uint64
}

type AccountsSnapshot struct {
	Accounts []core.Account
	Loading  bool
	Err      error
}

func NewAccounts(accountsAPI AccountsAPI, logger *log.Logger) *Accounts {
	if logger == nil {
		logger = log.New(log.ComponentState, log.Config{})
	}
	return &Accounts{api: accountsAPI, logger: logger}
}

func (s *Accounts) Snapshot() AccountsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Account, len(s.accounts))
	copy(out, s.accounts)
	return AccountsSnapshot{Accounts: out, Loading: s.loading, Err: s.err}
}

// Load fetches the account list. When loads overlap, only the most
// recently issued one may update the container.
func (s *Accounts) Load(ctx context.Context) error {
	seq := s.begin()
	accounts, err := s.api.ListAccounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.DebugContext(ctx, "dropping superseded accounts response", log.FieldSeq, seq)
		return err
	}
	s.loading = false
	s.err = err
	if err == nil {
		s.accounts = accounts
	}
	return err
}

// Create adds an account remotely and appends it locally on success.
func (s *Accounts) Create(ctx context.Context, in core.AccountInput) (core.Account, error) {
	account, err := s.api.CreateAccount(ctx, in)
	if err != nil {
		s.fail(err)
		return core.Account{}, err
	}
	s.mu.Lock()
	s.accounts = append(s.accounts, account)
	s.err = nil
	s.mu.Unlock()
	return account, nil
}

// Update replaces the matching local copy on success.
func (s *Accounts) Update(ctx context.Context, id string, in core.AccountInput) (core.Account, error) {
	account, err := s.api.UpdateAccount(ctx, id, in)
	if err != nil {
		s.fail(err)
		return core.Account{}, err
	}
	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i] = account
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	return account, nil
}

// Delete removes the local copy on success.
func (s *Accounts) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteAccount(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Get returns the local copy of one account.
func (s *Accounts) Get(id string) (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

// TotalBalance sums active account balances.
func (s *Accounts) TotalBalance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.TotalBalance(s.accounts)
}

func (s *Accounts) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	s.err = nil
	return s.seq
}

func (s *Accounts) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
