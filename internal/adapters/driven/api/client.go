package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.JobAPI = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// SessionCookie is the dashboard session cookie.
	SessionCookie = "fl_admin"

	// HeaderRequestID carries a per-request id for backend logs.
	HeaderRequestID = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API base, for example "https://host/api".
	BaseURL string

	// Token is an optional bearer token.
	Token string

	// Session is a stored dashboard session to resume.
	Session string

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond int

	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client talks to the inspection backend over HTTP.
type Client struct {
	base        *url.URL
	http        *http.Client
	jar         http.CookieJar
	rateLimiter *RateLimiter

	mu      sync.RWMutex
	session string
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base, err := parseBase(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   transport,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
		jar:         jar,
		rateLimiter: NewRateLimiter(cfg.RatePerSecond),
	}
	if cfg.Session != "" {
		c.setSession(cfg.Session)
	}
	return c, nil
}

func parseBase(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrNoBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoBaseURL, raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the normalised API base.
func (c *Client) BaseURL() string {
	return c.baseURL().String()
}

func (c *Client) baseURL() *url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// SetBaseURL points later requests at a new API base. An invalid base is
// rejected and the current one kept. A held session follows the client
// to the new host.
func (c *Client) SetBaseURL(raw string) error {
	base, err := parseBase(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.base = base
	token := c.session
	c.mu.Unlock()
	if token != "" {
		c.setSession(token)
	}
	logger.Debug("API base set to %s", base)
	return nil
}

// Session returns the current session token, or "".
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// setSession installs the session cookie for the backend host. The cookie
// is set without the Secure flag so a session also works against plain
// http development servers.
func (c *Client) setSession(token string) {
	c.mu.Lock()
	c.session = token
	c.mu.Unlock()
	c.jar.SetCookies(c.originURL(), []*http.Cookie{{Name: SessionCookie, Value: token, Path: "/"}})
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()
	c.jar.SetCookies(c.originURL(), []*http.Cookie{{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1}})
}

func (c *Client) originURL() *url.URL {
	base := c.baseURL()
	return &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
}

// endpoint joins path segments onto the base, escaping each one.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL().JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends a request and returns the response for 2xx statuses. Any other
// status is returned as an *APIError or *RateLimitError with the body
// consumed.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body any) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w: %w", op, domain.ErrFetchFailed, err)
	}

	if err := c.rateLimiter.CheckRateLimit(op, resp); err != nil {
		drain(resp)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer drain(resp)
		return nil, newAPIError(op, endpoint, resp)
	}
	return resp, nil
}

// getJSON sends a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	return c.sendJSON(ctx, op, http.MethodGet, endpoint, nil, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, endpoint string, body, out any) error {
	resp, err := c.do(ctx, op, method, endpoint, body)
	if err != nil {
		return err
	}
	defer drain(resp)
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s failed: decode response: %w", op, err)
	}
	return nil
}

func newAPIError(op, endpoint string, resp *http.Response) *APIError {
	e := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        endpoint,
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return e
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil {
		e.Detail = detailText(payload.Detail)
	}
	return e
}

// detailText renders the "detail" field of an error body. Validation
// errors arrive as a list of objects carrying "msg".
func detailText(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok {
					parts = append(parts, msg)
					continue
				}
			}
			if s := detailText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
