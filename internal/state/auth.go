package state

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Auth tracks the signed-in user and keeps the durable session store
// in step with the remote session.
type Auth struct {
	api    AuthAPI
	store  SessionStore
	logger *log.Logger

	mu            sync.Mutex
	user          core.User
	authenticated bool
	loading       bool
	err           error
	seq           uint64
}

type AuthSnapshot struct {
	User          core.User
	Authenticated bool
	Loading       bool
	Err           error
}

func NewAuth(authAPI AuthAPI, store SessionStore, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.New(log.ComponentState, log.Config{})
	}
	return &Auth{api: authAPI, store: store, logger: logger}
}

func (a *Auth) Snapshot() AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AuthSnapshot{
		User:          a.user,
		Authenticated: a.authenticated,
		Loading:       a.loading,
		Err:           a.err,
	}
}

// Signup registers and signs in. The fresh token is persisted before
// the container reports success.
func (a *Auth) Signup(ctx context.Context, in core.SignupInput) error {
	return a.establish(ctx, func() (api.Session, error) {
		return a.api.Signup(ctx, in)
	})
}

// Login signs in and persists the session.
func (a *Auth) Login(ctx context.Context, in core.LoginInput) error {
	return a.establish(ctx, func() (api.Session, error) {
		return a.api.Login(ctx, in)
	})
}

func (a *Auth) establish(ctx context.Context, exchange func() (api.Session, error)) error {
	seq := a.begin()
	session, err := exchange()
	if err != nil {
		a.finish(seq, err)
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		a.logger.DebugContext(ctx, "dropping superseded session response", log.FieldSeq, seq)
		return nil
	}
	// Persist inside the critical section so a concurrent clear cannot
	// interleave between the save and the state change.
	if err := a.store.Save(ctx, session.Token, session.User); err != nil {
		a.loading = false
		a.err = err
		return err
	}
	a.user = session.User
	a.authenticated = true
	a.loading = false
	a.err = nil
	return nil
}

// Restore adopts a session loaded from the durable store without a
// network round trip, e.g. at CLI startup.
func (a *Auth) Restore(user core.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.authenticated = true
}

// Refresh asks the backend who the token belongs to. A 401 is
// authoritative: the session is cleared locally and not retried. Any
// other failure leaves the current user untouched. A response that was
// superseded by a logout or a newer sign-in is dropped.
func (a *Auth) Refresh(ctx context.Context) error {
	seq := a.begin()
	user, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.logger.InfoContext(ctx, "session expired, clearing local state")
			a.clear(ctx, seq)
		} else {
			a.finish(seq, err)
		}
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		a.logger.DebugContext(ctx, "dropping superseded session response", log.FieldSeq, seq)
		return nil
	}
	a.user = user
	a.authenticated = true
	a.loading = false
	a.err = nil
	return nil
}

// Logout clears the local session. The backend holds no server-side
// session state to revoke.
func (a *Auth) Logout(ctx context.Context) error {
	a.clear(ctx, 0)
	return nil
}

// clear drops the local and stored session, advancing the sequence so
// any response issued beforehand is dropped on arrival. A non-zero seq
// makes the clear conditional: it only applies while that sequence is
// still current, so a stale 401 cannot wipe a newer sign-in.
func (a *Auth) clear(ctx context.Context, seq uint64) {
	a.mu.Lock()
	if seq != 0 && seq != a.seq {
		a.mu.Unlock()
		a.logger.DebugContext(ctx, "dropping superseded session clear", log.FieldSeq, seq)
		return
	}
	a.user = core.User{}
	a.authenticated = false
	a.loading = false
	a.err = nil
	a.seq++
	a.mu.Unlock()

	if err := a.store.Clear(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to clear stored session", log.FieldError, err)
	}
}

func (a *Auth) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.loading = true
	a.err = nil
	return a.seq
}

func (a *Auth) finish(seq uint64, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		return
	}
	a.loading = false
	a.err = err
}
