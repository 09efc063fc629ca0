// Package apiclient is the HTTP transport for the internship API. It attaches
// the bearer token, renews it on 401 through a single-flight Coordinator, and
// normalises every failure into an *apierr.Error.
package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	// RouteRefresh is the token renewal endpoint.
	RouteRefresh = "/auth/refresh"

	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 15 * time.Second
)

// Client issues API calls on behalf of the signed-in student.
type Client struct {
	baseURL     string
	http        *http.Client
	vault       *tokens.Vault
	coordinator *Coordinator
	metrics     *Metrics
	logger      zerolog.Logger

	hooksLock    sync.RWMutex
	expiredHooks []func(error)
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (and its timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout, refresh calls included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, vault *tokens.Vault, options ...Option) (*Client, error) {
	if vault == nil {
		return nil, errors.New("[apiclient.New] token vault is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("[apiclient.New] invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		vault:   vault,
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.coordinator = NewCoordinator(c.refreshAccessToken, c.metrics)
	return c, nil
}

// Vault exposes the token storage the client reads from.
func (c *Client) Vault() *tokens.Vault {
	return c.vault
}

// Coordinator exposes the refresh coordinator, mainly for observation.
func (c *Client) Coordinator() *Coordinator {
	return c.coordinator
}

// OnSessionExpired registers fn to be called after a failed refresh has
// cleared the stored tokens.
func (c *Client) OnSessionExpired(fn func(error)) {
	c.hooksLock.Lock()
	defer c.hooksLock.Unlock()
	c.expiredHooks = append(c.expiredHooks, fn)
}

// Do sends req and returns the 2xx response. Any other outcome is returned
// as an *apierr.Error. A 401 on the first attempt renews the access token
// and retries once.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	token := ""
	if !req.anonymous {
		var err error
		if token, err = c.vault.AccessToken(ctx); err != nil {
			return nil, apierr.From(err)
		}
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, req, token)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 300 {
			return resp, nil
		}
		if resp.StatusCode != http.StatusUnauthorized || token == "" {
			return nil, apierr.FromResponse(resp.StatusCode, resp.Body)
		}
		if attempt > 0 {
			// Already retried with a renewed token: fail fast, no second refresh.
			c.logger.Warn().Str("request", req.String()).Msg("Request rejected after token refresh")
			return nil, apierr.FromResponse(resp.StatusCode, resp.Body)
		}
		if token, err = c.renew(ctx, token); err != nil {
			return nil, err
		}
	}
}

// DoJSON sends req and decodes a JSON response body into out when out is non-nil.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		c.logger.Err(err).Str("request", req.String()).Msg("Failed to decode response")
		return apierr.New(apierr.CodeUnknown, "Unexpected response from the server.", resp.StatusCode)
	}
	return nil
}

// renew returns the token to retry with after stale was rejected.
func (c *Client) renew(ctx context.Context, stale string) (string, error) {
	current, err := c.vault.AccessToken(ctx)
	if err == nil && current != stale {
		if current == "" {
			// Signed out or already torn down while this request was in flight.
			return "", apierr.SessionExpired(interrors.ErrSessionExpired)
		}
		// Another caller already rotated the token.
		return current, nil
	}

	fresh, err := c.coordinator.Await(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", apierr.Network(ctxErr)
		}
		return "", apierr.SessionExpired(err)
	}
	return fresh, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// refreshAccessToken is the Coordinator's RefreshFunc. On success the new
// token is persisted before queued callers are released; on failure the
// stored tokens are cleared and the session-expired hooks fire. A session
// that was cleared or replaced during the exchange is left untouched.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	generation := c.vault.Generation()
	access, err := c.exchangeRefreshToken(ctx)
	if err != nil {
		if c.vault.Generation() != generation {
			return "", errors.Wrap(tokens.ErrSuperseded, err.Error())
		}
		c.logger.Err(err).Msg("Token refresh failed, ending session")
		c.teardown(ctx, err)
		return "", err
	}
	if err := c.vault.SaveAccessTokenIf(ctx, access, generation); err != nil {
		if errors.Is(err, tokens.ErrSuperseded) {
			c.logger.Debug().Msg("Session changed during refresh, discarding token")
			return "", err
		}
		c.teardown(ctx, err)
		return "", err
	}
	evt := c.logger.Debug()
	if exp, ok := tokens.AccessExpiry(access); ok {
		evt = evt.Time("expires_at", exp)
	}
	evt.Msg("Access token refreshed")
	return access, nil
}

func (c *Client) exchangeRefreshToken(ctx context.Context) (string, error) {
	refresh, err := c.vault.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", interrors.ErrNoRefreshToken
	}

	req, err := JSON(http.MethodPost, RouteRefresh, refreshRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}
	resp, err := c.send(ctx, req.Anonymous(), "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", apierr.FromResponse(resp.StatusCode, resp.Body)
	}
	var payload refreshResponse
	if err := resp.Decode(&payload); err != nil {
		return "", errors.Wrap(err, "decoding refresh response")
	}
	if payload.AccessToken == "" {
		return "", errors.New("refresh response has no access token")
	}
	return payload.AccessToken, nil
}

func (c *Client) teardown(ctx context.Context, cause error) {
	if err := c.vault.Clear(ctx); err != nil {
		c.logger.Err(err).Msg("Failed to clear tokens")
	}
	c.hooksLock.RLock()
	hooks := append([]func(error){}, c.expiredHooks...)
	c.hooksLock.RUnlock()
	for _, hook := range hooks {
		hook(interrors.Wrapf(interrors.ErrSessionExpired, "%v", cause))
	}
}

// send performs one HTTP exchange. A nil error means a response was read,
// whatever its status.
func (c *Client) send(ctx context.Context, req Request, token string) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bytes.NewReader(req.body))
	if err != nil {
		return nil, apierr.From(err)
	}
	for key, values := range req.header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := ulid.Make().String()
	httpReq.Header.Set(requestIDHeader, requestID)
	if token != "" && !req.anonymous {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug().Err(err).Str("request", req.String()).Str("request_id", requestID).Msg("Request failed")
		return nil, apierr.Network(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Network(err)
	}
	c.metrics.observe(resp.StatusCode)
	c.logger.Debug().
		Str("request", req.String()).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API call")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
