// Package api is the HTTP boundary to the remote finance tracker. It
// attaches the bearer credential, normalizes every failure into *Error
// and flattens the backend's inconsistently wrapped list payloads, so
// the rest of the client only ever sees canonical shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/log"
)

var (
	// ErrUnauthorized marks a 401. On /auth/me it is the signal to
	// clear the local session, never retried.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadySeeded marks the expected failure of a repeated
	// POST /categories/initialize. Callers treat it as success.
	ErrAlreadySeeded = errors.New("default categories already exist")
)

// Error is the normalized shape of any non-2xx response or transport
// failure.
type Error struct {
	StatusCode int    // 0 for transport failures
	Message    string // server-supplied when present, else a fallback
	RequestID  string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: request failed: %s", e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) work on normalized errors.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// TokenSource supplies the current bearer token. An empty string means
// no session; the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-string TokenSource, mostly for tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client issues authenticated REST calls against the tracker API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New creates a client for the given base URL. tokens may be nil for a
// client that only performs unauthenticated calls.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.ComponentAPI, log.Config{})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
		tokens:  tokens,
		logger:  logger,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// do executes one request. body is JSON-encoded when non-nil; the
// response body is decoded into out when out is non-nil. All failures
// come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err), RequestID: requestID}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("build request: %v", err), RequestID: requestID}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldRequestID, requestID,
			log.FieldError, err)
		return &Error{Message: err.Error(), RequestID: requestID}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request done",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldRequestID, requestID,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), RequestID: requestID}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(data, resp.StatusCode),
			RequestID:  requestID,
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), RequestID: requestID}
		}
	}
	return nil
}

// serverMessage extracts the backend's {"message": ...} when present,
// falling back to the status text.
func serverMessage(data []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(status)
}
