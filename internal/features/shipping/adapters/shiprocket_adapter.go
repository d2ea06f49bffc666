package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"shipping-gateway/internal/core/config"
	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/core/retry"
	"shipping-gateway/internal/features/shipping/domain"
	"shipping-gateway/internal/features/shipping/ports"

	"go.uber.org/zap"
)

const (
	loginPath = "/external/auth/login"

	// maxResponseBytes bounds JSON bodies read from the carrier.
	maxResponseBytes = 8 << 20
)

// ShiprocketAdapter implements the CarrierGateway interface using the Shiprocket REST API.
type ShiprocketAdapter struct {
	// client is the HTTP client used for API and document requests.
	client *http.Client
	// config holds the account and token settings.
	config config.ShiprocketConfig
	// baseURL is the parsed config.BaseURL.
	baseURL *url.URL
	// tokens holds the bearer token between requests.
	tokens ports.TokenStore
	// converter builds ad-hoc order payloads.
	converter *OrderConverter
	// authPolicy re-runs an operation once after a rejected token.
	authPolicy retry.Policy
	// now is the clock used for token expiry.
	now func() time.Time
	// held is the last token Authenticate handed out, used while the store is unreachable.
	held atomic.Pointer[domain.AuthToken]

	// mu serializes token read-check-write, including the login round trip.
	mu sync.Mutex
}

// NewShiprocketAdapter creates a new instance of ShiprocketAdapter.
func NewShiprocketAdapter(cfg config.ShiprocketConfig, client *http.Client, tokens ports.TokenStore, parser ports.AddressParser) (*ShiprocketAdapter, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid shiprocket base url %q", cfg.BaseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	a := &ShiprocketAdapter{
		client:    client,
		config:    cfg,
		baseURL:   base,
		tokens:    tokens,
		converter: NewOrderConverter(parser, cfg.PickupLocation),
		now:       time.Now,
	}
	a.authPolicy = retry.Policy{
		MaxAttempts: 2,
		Retryable:   domain.IsAuthFailure,
		BeforeRetry: a.refreshAfterRejection,
	}
	return a, nil
}

// Authenticate makes sure a valid token is stored and returns it.
func (a *ShiprocketAdapter) Authenticate(ctx context.Context, forceRefresh bool) (domain.AuthToken, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	if !forceRefresh {
		tok, ok, err := a.tokens.Load(ctx)
		if err != nil {
			if held := a.held.Load(); held != nil && held.Valid(now) {
				return *held, nil
			}
			logger.Get().Warn("Token store unavailable, logging in again", zap.Error(err))
		} else if ok && tok.Valid(now) {
			a.held.Store(&tok)
			return tok, nil
		}

		if a.config.StaticToken != "" {
			tok := domain.AuthToken{Value: a.config.StaticToken, ExpiresAt: now.Add(a.config.StaticTokenTTL)}
			a.keep(ctx, tok)
			logger.Get().Info("Using configured Shiprocket token", zap.Time("expires_at", tok.ExpiresAt))
			return tok, nil
		}
	}

	if !a.config.HasCredentials() {
		return domain.AuthToken{}, fmt.Errorf("%w: no login credentials configured", domain.ErrAuthentication)
	}

	tok, err := a.login(ctx, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if clearErr := a.tokens.Clear(ctx); clearErr != nil {
				logger.Get().Warn("Failed to clear token after rejected login", zap.Error(clearErr))
			}
		}
		return domain.AuthToken{}, err
	}

	a.keep(ctx, tok)
	logger.Get().Info("Shiprocket login succeeded", zap.Time("expires_at", tok.ExpiresAt))
	return tok, nil
}

// keep holds tok in memory and shares it through the store.
func (a *ShiprocketAdapter) keep(ctx context.Context, tok domain.AuthToken) {
	a.held.Store(&tok)
	if err := a.tokens.Save(ctx, tok); err != nil {
		logger.Get().Warn("Failed to store Shiprocket token", zap.Error(err))
	}
}

// currentToken returns the stored token, falling back to the held one when
// the store is unreachable or lost it.
func (a *ShiprocketAdapter) currentToken(ctx context.Context) (domain.AuthToken, error) {
	now := a.now()
	tok, ok, err := a.tokens.Load(ctx)
	if err == nil && ok && tok.Valid(now) {
		return tok, nil
	}
	if held := a.held.Load(); held != nil && held.Valid(now) {
		return *held, nil
	}
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("%w: %v", domain.ErrTokenUnavailable, err)
	}
	return domain.AuthToken{}, domain.ErrTokenUnavailable
}

// login exchanges email and password for a token.
func (a *ShiprocketAdapter) login(ctx context.Context, now time.Time) (domain.AuthToken, error) {
	payload, err := json.Marshal(loginRequest{Email: a.config.Email, Password: a.config.Password})
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("failed to encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(loginPath, nil), bytes.NewReader(payload))
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("%w: failed to read login response: %v", domain.ErrAuthentication, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.AuthToken{}, &domain.APIError{
			Kind:       domain.ErrInvalidCredentials,
			Op:         "login",
			StatusCode: resp.StatusCode,
			Body:       domain.Truncate(string(body), domain.MaxErrorBody),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AuthToken{}, &domain.APIError{
			Kind:       domain.ErrAuthentication,
			Op:         "login",
			StatusCode: resp.StatusCode,
			Body:       domain.Truncate(string(body), domain.MaxErrorBody),
		}
	}

	var parsed loginResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.AuthToken{}, fmt.Errorf("login: %w: %v", domain.ErrMalformedResponse, err)
	}
	if parsed.Token == "" {
		return domain.AuthToken{}, fmt.Errorf("login: %w: no token in response", domain.ErrMalformedResponse)
	}

	return domain.AuthToken{Value: parsed.Token, ExpiresAt: now.Add(a.config.TokenTTL)}, nil
}

// refreshAfterRejection drops the rejected token and logs in again.
func (a *ShiprocketAdapter) refreshAfterRejection(ctx context.Context, attempt int, cause error) error {
	logger.Get().Warn("Shiprocket rejected token, re-authenticating",
		zap.Int("attempt", attempt),
		zap.Error(cause),
	)
	a.held.Store(nil)
	if err := a.tokens.Clear(ctx); err != nil {
		logger.Get().Warn("Failed to clear rejected token", zap.Error(err))
	}
	_, err := a.Authenticate(ctx, true)
	return err
}

// call authenticates, runs the request and retries once on a rejected token.
func (a *ShiprocketAdapter) call(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	return retry.Do(ctx, a.authPolicy, func(ctx context.Context) (json.RawMessage, error) {
		if _, err := a.Authenticate(ctx, false); err != nil {
			return nil, err
		}
		return a.makeRequest(ctx, op, method, path, query, body)
	})
}

// makeRequest sends one authenticated JSON request. It never logs in.
func (a *ShiprocketAdapter) makeRequest(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	tok, err := a.currentToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute request: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := domain.NewAPIError(op, resp.StatusCode, respBody)
		logger.Get().Warn("Shiprocket request failed",
			zap.String("op", op),
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("body", apiErr.Body),
		)
		return nil, apiErr
	}

	respBody = bytes.TrimSpace(respBody)
	if len(respBody) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrMalformedResponse)
	}
	return json.RawMessage(respBody), nil
}

// endpoint joins the base URL with an already escaped path.
func (a *ShiprocketAdapter) endpoint(path string, query url.Values) string {
	u := *a.baseURL
	escaped := strings.TrimRight(a.baseURL.EscapedPath(), "/") + path
	u.RawPath = escaped
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// loginRequest is the body of POST /external/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse holds the only field we read from the login reply.
type loginResponse struct {
	Token string `json:"token"`
}
