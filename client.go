package magento

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultScope is the store scope used when none is given. It matches
	// the "all" scope of the Magento REST URL convention.
	DefaultScope = "all"

	// DefaultPageSize is the page size used for paginated listings.
	// Raising it rarely speeds listings up, and instances can cap it
	// server-side:
	// https://developer.adobe.com/commerce/webapi/get-started/api-security/
	DefaultPageSize = 1000

	modulePath = "merx.dev/magento"
)

var (
	// ErrMissingBaseURL is returned by New when no base URL is given.
	ErrMissingBaseURL = errors.New("missing base URL")
	// ErrMissingCredentials is returned when neither a token nor login
	// credentials are available.
	ErrMissingCredentials = errors.New("missing API token or login credentials")
	// ErrReadOnly is returned for mutating calls on a read-only client.
	ErrReadOnly = errors.New("client is read-only")
	// ErrNotSingleResult is returned when a query expected to match a
	// single entity matches several.
	ErrNotSingleResult = errors.New("query matched more than one result")
)

// Client calls the Magento 2 REST API of a single instance. Its
// configuration is immutable after [New]; a Client is safe for concurrent
// use.
type Client struct {
	baseURL   string
	scope     string
	userAgent string
	pageSize  int
	readOnly  bool

	header     http.Header
	httpClient *http.Client
	logger     *slog.Logger

	auth *tokenStore

	retryAfterMu sync.Mutex
	retryAfter   time.Time
}

// ClientOption configures a Client before use.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. Timeouts are the transport's
// responsibility; the default client uses 30 seconds.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger enables debug logging of outgoing requests and pagination
// progress.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPageSize overrides [DefaultPageSize] for paginated listings.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithReadOnly makes every mutating call fail with [ErrReadOnly].
// Read-shaped POST endpoints such as [Client.BasePrices] still work.
func WithReadOnly() ClientOption {
	return func(c *Client) {
		c.readOnly = true
	}
}

// WithLogin configures admin credentials so the client obtains and renews
// an admin token lazily instead of using a fixed integration token.
func WithLogin(username, password string) ClientOption {
	return func(c *Client) {
		c.auth.username = username
		c.auth.password = password
	}
}

// New creates a client for the Magento instance at baseURL. The token is
// an integration token attached as a bearer to every request; it may be
// empty when [WithLogin] is used. An empty scope defaults to
// [DefaultScope].
func New(baseURL, token, scope string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if scope == "" {
		scope = DefaultScope
	}

	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		scope:    scope,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.New(slog.DiscardHandler),
		auth:   &tokenStore{token: token},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.auth.token == "" && c.auth.username == "" {
		return nil, ErrMissingCredentials
	}

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}

	c.header = make(http.Header)
	c.header.Set("Content-Type", "application/json")
	c.header.Set("Accept", "application/json")
	c.header.Set("User-Agent", c.userAgent)

	return c, nil
}

// Scope returns the store scope the client was created with.
func (c *Client) Scope() string {
	return c.scope
}

// version returns the module version of the magento package.
// It returns "devel" if built without module version information.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Version == "(devel)" {
				return "devel"
			}

			return dep.Version
		}
	}

	if info.Main.Path == modulePath {
		if info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		// If main version is (devel), we can try to read vcs revision
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return "devel+" + setting.Value[:7]
			}
		}
	}

	return "devel"
}

// userAgent returns the default User-Agent string for this package.
func userAgent() string {
	v := version()
	goVersion := runtime.Version()
	os := runtime.GOOS
	arch := runtime.GOARCH
	return fmt.Sprintf("go-magento/%s (%s; %s/%s)", v, goVersion, os, arch)
}
