package state

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"fintrack/internal/api"
	"fintrack/internal/core"
)

type fakeAuthAPI struct {
	session api.Session
	err     error
	meUser  core.User
	meErr   error
}

func (f *fakeAuthAPI) Signup(ctx context.Context, in core.SignupInput) (api.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthAPI) Login(ctx context.Context, in core.LoginInput) (api.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthAPI) Me(ctx context.Context) (core.User, error) {
	return f.meUser, f.meErr
}

type fakeSessionStore struct {
	token   string
	user    core.User
	saves   int
	clears  int
	saveErr error
}

func (f *fakeSessionStore) Save(ctx context.Context, token string, user core.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	f.user = user
	f.saves++
	return nil
}

func (f *fakeSessionStore) Clear(ctx context.Context) error {
	f.token = ""
	f.user = core.User{}
	f.clears++
	return nil
}

func TestAuthLogin(t *testing.T) {
	user := core.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	authAPI := &fakeAuthAPI{session: api.Session{Token: "tok", User: user}}
	store := &fakeSessionStore{}
	a := NewAuth(authAPI, store, nil)

	err := a.Login(context.Background(), core.LoginInput{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := a.Snapshot()
	if !snap.Authenticated || snap.User.ID != "u1" {
		t.Fatalf("snapshot: %+v", snap)
	}
	if snap.Loading || snap.Err != nil {
		t.Fatalf("flags not settled: %+v", snap)
	}
	if store.token != "tok" || store.saves != 1 {
		t.Fatalf("session not persisted: %+v", store)
	}
}

func TestAuthLoginFailure(t *testing.T) {
	authAPI := &fakeAuthAPI{err: errors.New("bad credentials")}
	store := &fakeSessionStore{}
	a := NewAuth(authAPI, store, nil)

	if err := a.Login(context.Background(), core.LoginInput{Email: "x@y.z", Password: "pw"}); err == nil {
		t.Fatalf("expected error")
	}
	snap := a.Snapshot()
	if snap.Authenticated {
		t.Fatalf("must not authenticate on failure")
	}
	if snap.Err == nil {
		t.Fatalf("error not recorded")
	}
	if store.saves != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestAuthLoginPersistFailure(t *testing.T) {
	authAPI := &fakeAuthAPI{session: api.Session{Token: "tok"}}
	store := &fakeSessionStore{saveErr: errors.New("disk full")}
	a := NewAuth(authAPI, store, nil)

	if err := a.Login(context.Background(), core.LoginInput{Email: "x@y.z", Password: "pw"}); err == nil {
		t.Fatalf("expected persist error to surface")
	}
	if a.Snapshot().Authenticated {
		t.Fatalf("must not report success when the session was not saved")
	}
}

func TestAuthRefreshUnauthorizedClearsSession(t *testing.T) {
	authAPI := &fakeAuthAPI{meErr: &api.Error{StatusCode: http.StatusUnauthorized, Message: "expired"}}
	store := &fakeSessionStore{token: "stale"}
	a := NewAuth(authAPI, store, nil)
	a.Restore(core.User{ID: "u1"})

	err := a.Refresh(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("got %v, want unauthorized", err)
	}
	if a.Snapshot().Authenticated {
		t.Fatalf("session must be cleared on 401")
	}
	if store.clears != 1 || store.token != "" {
		t.Fatalf("stored session must be cleared: %+v", store)
	}
}

func TestAuthRefreshTransientFailureKeepsUser(t *testing.T) {
	authAPI := &fakeAuthAPI{meErr: &api.Error{Message: "connection refused"}}
	store := &fakeSessionStore{}
	a := NewAuth(authAPI, store, nil)
	a.Restore(core.User{ID: "u1"})

	if err := a.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	snap := a.Snapshot()
	if !snap.Authenticated || snap.User.ID != "u1" {
		t.Fatalf("transient failure must not drop the session: %+v", snap)
	}
	if store.clears != 0 {
		t.Fatalf("stored session must survive transient failures")
	}
}

// gatedAuthAPI blocks Me until released so tests can interleave other
// operations with an in-flight refresh.
type gatedAuthAPI struct {
	fakeAuthAPI
	started chan struct{}
	release chan struct{}
}

func (f *gatedAuthAPI) Me(ctx context.Context) (core.User, error) {
	close(f.started)
	<-f.release
	return f.meUser, f.meErr
}

func TestAuthLogoutDropsInFlightRefresh(t *testing.T) {
	fake := &gatedAuthAPI{started: make(chan struct{}), release: make(chan struct{})}
	fake.meUser = core.User{ID: "u1", Name: "Stale", Email: "stale@example.com"}
	store := &fakeSessionStore{token: "tok"}
	a := NewAuth(fake, store, nil)
	a.Restore(core.User{ID: "u1"})

	done := make(chan error)
	go func() { done <- a.Refresh(context.Background()) }()
	<-fake.started

	// Logout supersedes the in-flight refresh.
	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	close(fake.release)
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := a.Snapshot()
	if snap.Authenticated {
		t.Fatalf("stale session response must not survive a logout: %+v", snap.User)
	}
	if snap.Loading {
		t.Fatalf("loading flag must settle")
	}
	if store.token != "" {
		t.Fatalf("stored session must stay cleared: %+v", store)
	}
}

func TestAuthStaleUnauthorizedKeepsNewerSession(t *testing.T) {
	fake := &gatedAuthAPI{started: make(chan struct{}), release: make(chan struct{})}
	fake.meErr = &api.Error{StatusCode: http.StatusUnauthorized, Message: "expired"}
	fake.session = api.Session{Token: "fresh", User: core.User{ID: "u2", Name: "New"}}
	store := &fakeSessionStore{token: "old"}
	a := NewAuth(fake, store, nil)
	a.Restore(core.User{ID: "u1"})

	done := make(chan error)
	go func() { done <- a.Refresh(context.Background()) }()
	<-fake.started

	// A newer sign-in lands while the doomed refresh is in flight.
	if err := a.Login(context.Background(), core.LoginInput{Email: "new@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	close(fake.release)
	if err := <-done; !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("refresh: got %v, want unauthorized", err)
	}

	snap := a.Snapshot()
	if !snap.Authenticated || snap.User.ID != "u2" {
		t.Fatalf("stale 401 must not clear the newer session: %+v", snap)
	}
	if store.clears != 0 || store.token != "fresh" {
		t.Fatalf("stored session must survive: %+v", store)
	}
}

func TestAuthLogout(t *testing.T) {
	store := &fakeSessionStore{token: "tok"}
	a := NewAuth(&fakeAuthAPI{}, store, nil)
	a.Restore(core.User{ID: "u1"})

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Snapshot().Authenticated || store.token != "" {
		t.Fatalf("logout must clear local and stored session")
	}
}
