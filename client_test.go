package magento

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer starts a server serving handler, closed with the test.
func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv
}

// newTestClient returns a client pointed at a test server serving
// handler, authenticated with the token "secret" on scope "toto".
func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) *Client {
	t.Helper()

	c, err := New(newTestServer(t, handler).URL, "secret", "toto", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		opts    []ClientOption
		wantErr error
	}{
		{
			name:    "missing base URL",
			token:   "secret",
			wantErr: ErrMissingBaseURL,
		},
		{
			name:    "missing credentials",
			baseURL: "https://shop.example.com",
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "token given",
			baseURL: "https://shop.example.com",
			token:   "secret",
		},
		{
			name:    "login given",
			baseURL: "https://shop.example.com",
			opts:    []ClientOption{WithLogin("admin", "pw")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.baseURL, tt.token, "", tt.opts...)
			if err != tt.wantErr {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("https://shop.example.com/", "secret", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.scope != DefaultScope {
		t.Errorf("scope = %q, want %q", c.scope, DefaultScope)
	}
	if c.Scope() != DefaultScope {
		t.Errorf("Scope() = %q, want %q", c.Scope(), DefaultScope)
	}
	if c.pageSize != DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", c.pageSize, DefaultPageSize)
	}
	if c.baseURL != "https://shop.example.com" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", c.baseURL)
	}
	if got := c.header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := c.header.Get("User-Agent"); !strings.HasPrefix(got, "go-magento/") {
		t.Errorf("User-Agent = %q, want go-magento prefix", got)
	}
}

func TestNew_Options(t *testing.T) {
	httpClient := &http.Client{}
	c, err := New("https://shop.example.com", "secret", "de",
		WithHTTPClient(httpClient),
		WithUserAgent("custom-agent/1.0"),
		WithPageSize(25),
		WithReadOnly(),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.httpClient != httpClient {
		t.Error("WithHTTPClient not applied")
	}
	if got := c.header.Get("User-Agent"); got != "custom-agent/1.0" {
		t.Errorf("User-Agent = %q, want custom-agent/1.0", got)
	}
	if c.pageSize != 25 {
		t.Errorf("pageSize = %d, want 25", c.pageSize)
	}
	if !c.readOnly {
		t.Error("WithReadOnly not applied")
	}
	if c.scope != "de" {
		t.Errorf("scope = %q, want de", c.scope)
	}
}

func TestWithPageSize_IgnoresInvalid(t *testing.T) {
	c, err := New("https://shop.example.com", "secret", "", WithPageSize(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.pageSize != DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", c.pageSize, DefaultPageSize)
	}
}
