package anubis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/teamsync/internal/platform/resilience"
	"github.com/riskibarqy/teamsync/internal/usecase"
)

func newTestClient(srv *httptest.Server, cfg Config) *Client {
	cfg.BaseURL = srv.URL
	if cfg.IntrospectPath == "" {
		cfg.IntrospectPath = "/v1/auth/introspect"
	}
	return NewClient(srv.Client(), cfg, nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	raw, err := sonic.Marshal(v)
	if err != nil {
		t.Errorf("marshal response: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		writeJSON(t, w, map[string]any{
			"active":  true,
			"user_id": "usr-test",
			"email":   " Test@TeamSync.dev ",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{AdminKey: "admin-secret"})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "usr-test" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Email != "test@teamsync.dev" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"active": false})
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{})

	_, err := client.VerifyAccessToken(context.Background(), "invalid-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, Config{BaseURL: "http://127.0.0.1:1"}, nil)
	_, err := client.VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_ForbiddenMappedToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{AdminKey: "wrong-key"})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientVerifyAccessToken_UsesPrincipalCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, map[string]any{
			"active":  true,
			"user_id": "usr-cache",
			"email":   "cache@teamsync.dev",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{PrincipalTTL: time.Minute})

	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.Email != "cache@teamsync.dev" {
			t.Fatalf("unexpected email: %s", principal.Email)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop calls after 2 failures, got %d", got)
	}
}

func TestClientVerifyAccessToken_RejectedTokensDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{
		Circuit: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Hour, HalfOpenMaxReq: 1},
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("attempt %d: expected ErrUnauthorized, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected every call to reach anubis, got %d", got)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct{ base, path, want string }{
		{"http://anubis/", "v1/auth/introspect", "http://anubis/v1/auth/introspect"},
		{"http://anubis", "", "http://anubis"},
		{"http://anubis", "https://other/introspect", "https://other/introspect"},
	}
	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q)=%q want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
