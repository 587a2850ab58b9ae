package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/teamsync/internal/domain/user"
	"github.com/riskibarqy/teamsync/internal/platform/cache"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
	"github.com/riskibarqy/teamsync/internal/platform/resilience"
	"github.com/riskibarqy/teamsync/internal/usecase"
)

var errAnubisTransient = errors.New("anubis transient failure")

// Config describes the introspection endpoint and its failure handling.
type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Circuit        resilience.CircuitBreakerConfig
	PrincipalTTL   time.Duration
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}

	var principals *cache.Store
	if cfg.PrincipalTTL > 0 {
		principals = cache.NewStore(cfg.PrincipalTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		breaker:       resilience.NewCircuitBreakerFromConfig(cfg.Circuit),
		principals:    principals,
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return cache.Load(ctx, c.principals, "principal:"+hashToken(token), func(ctx context.Context) (user.Principal, error) {
		var principal user.Principal
		err := c.breaker.Do(ctx, func(ctx context.Context) error {
			var introspectErr error
			principal, introspectErr = c.introspect(ctx, token)
			return introspectErr
		}, isCircuitFailure)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return user.Principal{}, fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable)
		}
		if errors.Is(err, errAnubisTransient) {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return principal, err
	})
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("request introspection to anubis: %w", err), errAnubisTransient)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// A rejected admin key is a deployment problem, not a bad caller token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: anubis rejected admin key", usecase.ErrDependencyUnavailable)
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection server error", "status_code", resp.StatusCode)
		return user.Principal{}, errors.Mark(fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode), errAnubisTransient)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("read introspect response: %w", err), errAnubisTransient)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.Email) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has no email", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: strings.TrimSpace(decoded.UserID),
		Email:  user.NormalizeEmail(decoded.Email),
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
