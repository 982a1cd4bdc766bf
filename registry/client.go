// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// DefaultTokenURL is the token-issuing endpoint.
	DefaultTokenURL = "https://moduware.au.auth0.com/oauth/token"
	// DefaultAudience is the API identifier requested for issued tokens.
	DefaultAudience = "https://api.moduware.com"
	// DefaultAPIURL is the product API base URL.
	DefaultAPIURL = "https://api.moduware.com"
	// DefaultUserAgent identifies registration requests.
	DefaultUserAgent = "addproducts"
	// DefaultRequestsPerSecond paces registration requests.
	DefaultRequestsPerSecond = 5.0
	// DefaultTimeout bounds a single HTTP exchange.
	DefaultTimeout = 30 * time.Second

	// productPath is appended to API base URL, followed by escaped identifier.
	productPath = "/v1/product/"
	// maxErrorBody caps error response bytes read for classification.
	maxErrorBody = 64 << 10
)

// Config configures token exchange and product API access.
type Config struct {
	TokenURL  string
	Audience  string
	APIURL    string
	UserAgent string
	// RequestsPerSecond paces registration requests; zero or less disables pacing.
	RequestsPerSecond float64
	// Timeout bounds each HTTP exchange; zero uses DefaultTimeout.
	Timeout time.Duration
}

// withDefaults fills blank configuration values.
func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.TokenURL) == "" {
		c.TokenURL = DefaultTokenURL
	}

	if strings.TrimSpace(c.Audience) == "" {
		c.Audience = DefaultAudience
	}

	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	return c
}

// Client registers products using client-credentials bearer tokens.
type Client struct {
	tokens     oauth2.TokenSource
	httpClient *http.Client
	apiURL     string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient builds registration client. Tokens are fetched lazily and reused
// until expiry; call Authenticate to fail fast on bad credentials.
func NewClient(ctx context.Context, creds Credentials, cfg Config, logger *slog.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tokenConfig := clientcredentials.Config{
		ClientID:       creds.ID,
		ClientSecret:   creds.Secret,
		TokenURL:       cfg.TokenURL,
		EndpointParams: url.Values{"audience": {cfg.Audience}},
		AuthStyle:      oauth2.AuthStyleInParams,
	}

	baseClient := &http.Client{Timeout: cfg.Timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, baseClient)
	tokens := tokenConfig.TokenSource(ctx)

	httpClient := oauth2.NewClient(ctx, tokens)
	httpClient.Timeout = cfg.Timeout

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		tokens:     tokens,
		httpClient: httpClient,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		logger:     logger,
	}
}

// Authenticate exchanges client credentials for a bearer token.
func (c *Client) Authenticate() error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchToken, err)
	}

	c.logger.Debug("access token issued", "type", token.Type(), "expiry", token.Expiry)
	return nil
}

// Register posts one product record for identifier. A nil error means
// success; *RejectedError carries server message for HTTP 400.
func (c *Client) Register(ctx context.Context, id string, product Product) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	body, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	endpoint := c.apiURL + productPath + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("product registration response", "id", id, "status", resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	message := responseMessage(resp)
	if resp.StatusCode == http.StatusBadRequest {
		return &RejectedError{Message: message}
	}

	return fmt.Errorf("%d - %s", resp.StatusCode, message)
}

// responseMessage extracts "message" from JSON error body, falling back to status text.
func responseMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}

		if json.Unmarshal(data, &payload) == nil && strings.TrimSpace(payload.Message) != "" {
			return payload.Message
		}
	}

	return http.StatusText(resp.StatusCode)
}
