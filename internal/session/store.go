// Package session persists the signed-in session (bearer token plus
// user identity) across CLI invocations in a local SQLite file.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by Load when nothing is stored. Not having
// a session is a normal state, not a failure.
var ErrNoSession = errors.New("no stored session")

// Store is a durable single-row session store. It also acts as the API
// client's token source.
type Store struct {
	mu sync.RWMutex
	db *sql.DB

	// token mirrors the stored row so Token never touches the disk.
	token string
}

func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	s.token = s.loadToken()
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Token implements api.TokenSource. Empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Save stores the session, replacing any previous one.
func (s *Store) Save(ctx context.Context, token string, user core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_id, user_name, user_email, saved_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			user_name = excluded.user_name,
			user_email = excluded.user_email,
			saved_at = CURRENT_TIMESTAMP`,
		token, user.ID, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.token = token
	return nil
}

// Load returns the stored session, or ErrNoSession.
func (s *Store) Load(ctx context.Context) (string, core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var token string
	var user core.User
	err := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, user_name, user_email FROM session WHERE id = 1`).
		Scan(&token, &user.ID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.User{}, ErrNoSession
	}
	if err != nil {
		return "", core.User{}, fmt.Errorf("load session: %w", err)
	}
	return token, user, nil
}

// Clear removes the stored session. Clearing an empty store is fine.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.token = ""
	return nil
}

func (s *Store) loadToken() string {
	var token string
	err := s.db.QueryRow(`SELECT token FROM session WHERE id = 1`).Scan(&token)
	if err != nil {
		return ""
	}
	return token
}
