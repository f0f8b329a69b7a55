package api

import (
	"context"
	"net/http"

	"fintrack/internal/core"
)

// Session is the credential pair returned by signup and login.
type Session struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

// Signup registers a new user and returns the fresh session.
func (c *Client) Signup(ctx context.Context, in core.SignupInput) (Session, error) {
	var session Session
	if err := in.Validate(); err != nil {
		return session, err
	}
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, in, &session)
	return session, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, in core.LoginInput) (Session, error) {
	var session Session
	if err := in.Validate(); err != nil {
		return session, err
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &session)
	return session, err
}

// Me returns the user the current token belongs to. A 401 surfaces as
// ErrUnauthorized and means the session is gone for good.
func (c *Client) Me(ctx context.Context) (core.User, error) {
	var user core.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user)
	return user, err
}
