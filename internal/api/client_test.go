package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	var tokens TokenSource
	if token != "" {
		tokens = StaticToken(token)
	}
	return New(srv.URL, 5*time.Second, tokens, nil)
}

func TestDoSetsHeaders(t *testing.T) {
	var got http.Header
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}, "secret-token")

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth := got.Get("Authorization"); auth != "Bearer secret-token" {
		t.Fatalf("Authorization: got %q", auth)
	}
	if accept := got.Get("Accept"); accept != "application/json" {
		t.Fatalf("Accept: got %q", accept)
	}
	if got.Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID")
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var auth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, "")

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "" {
		t.Fatalf("Authorization should be absent, got %q", auth)
	}
}

func TestDoNormalizesServerErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", http.StatusBadRequest, `{"message":"invalid amount"}`, "invalid amount"},
		{"error field", http.StatusBadRequest, `{"error":"bad input"}`, "bad input"},
		{"plain body falls back", http.StatusInternalServerError, "boom", "Internal Server Error"},
		{"empty body falls back", http.StatusNotFound, "", "Not Found"},
	}
	for _, tc := range cases {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}, "t")

		_, err := c.Me(context.Background())
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s: got %T, want *Error", tc.name, err)
		}
		if apiErr.StatusCode != tc.status || apiErr.Message != tc.wantMsg {
			t.Fatalf("%s: got %d %q, want %d %q",
				tc.name, apiErr.StatusCode, apiErr.Message, tc.status, tc.wantMsg)
		}
		if apiErr.RequestID == "" {
			t.Fatalf("%s: missing request id", tc.name)
		}
	}
}

func TestDoUnauthorizedMatchesSentinel(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}, "stale")

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized match", err)
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, time.Second, nil, nil)
	_, err := c.Me(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *Error", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("transport failures carry status 0, got %d", apiErr.StatusCode)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("transport failure must not match ErrUnauthorized")
	}
}
