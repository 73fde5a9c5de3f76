package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestClient_URLBuilding(t *testing.T) {
	var gotURL, gotAuth string
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotURL = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))

	out, err := c.Get(context.Background(), "/V1/test/url", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls)
	}
	if gotURL != "/rest/toto/V1/test/url" {
		t.Errorf("URL = %q, want /rest/toto/V1/test/url", gotURL)
	}
	if strings.Contains(gotURL, "//") {
		t.Errorf("URL %q contains a double slash", gotURL)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}

	body, ok := out.(map[string]any)
	if !ok || body["ok"] != true {
		t.Errorf("Get() = %v, want decoded JSON object", out)
	}
}

func TestClient_QueryParams(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))

	params := url.Values{}
	params.Set("storeCodes", "default")
	if _, err := c.Get(context.Background(), "/V1/store/storeConfigs", params); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := gotQuery.Get("storeCodes"); got != "default" {
		t.Errorf("storeCodes = %q, want default", got)
	}
}

func TestClient_BodyRoundTrip(t *testing.T) {
	sent := map[string]any{
		"sku":  "W1033",
		"qty":  float64(3),
		"tags": []any{"a", "b"},
	}

	var received map[string]any
	var gotContentType string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &received); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	if _, err := c.Post(context.Background(), "/V1/products", sent); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if !reflect.DeepEqual(received, sent) {
		t.Errorf("body did not round-trip: got %v, want %v", received, sent)
	}
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantClient bool
		wantServer bool
	}{
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"message": "Invalid value"}`,
			wantClient: true,
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `{"message": "No such entity"}`,
			wantClient: true,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       "something broke",
			wantServer: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.Get(context.Background(), "/V1/anything", nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %T, want *APIError", err)
			}

			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if string(apiErr.Body) != tt.body {
				t.Errorf("Body = %q, want %q", apiErr.Body, tt.body)
			}
			if apiErr.Method != http.MethodGet {
				t.Errorf("Method = %q, want GET", apiErr.Method)
			}
			if apiErr.Path != "/rest/toto/V1/anything" {
				t.Errorf("Path = %q", apiErr.Path)
			}
			if apiErr.ClientError() != tt.wantClient {
				t.Errorf("ClientError() = %v, want %v", apiErr.ClientError(), tt.wantClient)
			}
			if apiErr.ServerError() != tt.wantServer {
				t.Errorf("ServerError() = %v, want %v", apiErr.ServerError(), tt.wantServer)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	c, err := New("http://127.0.0.1:0", "secret", "toto")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Get(context.Background(), "/V1/products", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("TransportError should wrap the underlying cause")
	}
}

func TestClient_EmptyBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))

	out, err := c.Delete(context.Background(), "/V1/products/W1033")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if out != nil {
		t.Errorf("Delete() = %v, want nil for an empty body", out)
	}
}

func TestClient_ReadOnly(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	}), WithReadOnly())

	if _, err := c.Post(context.Background(), "/V1/products", Entity{}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Post() error = %v, want ErrReadOnly", err)
	}
	if _, err := c.Put(context.Background(), "/V1/products/X", Entity{}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Put() error = %v, want ErrReadOnly", err)
	}
	if _, err := c.Delete(context.Background(), "/V1/products/X"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete() error = %v, want ErrReadOnly", err)
	}
	if calls != 0 {
		t.Errorf("read-only client issued %d requests", calls)
	}

	// GETs still go through.
	if _, err := c.Get(context.Background(), "/V1/products", nil); err != nil {
		t.Errorf("Get() error = %v", err)
	}

	// Read-shaped POST endpoints bypass the guard.
	if _, err := c.BasePrices(context.Background(), []SKU{"W1033"}); err != nil {
		t.Errorf("BasePrices() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
}

func TestClient_RetryAfterReissue(t *testing.T) {
	calls := 0
	var bodies []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))

		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"done": true}`))
	}))

	out, err := c.Post(context.Background(), "/V1/orders", Entity{"entity": Entity{"entity_id": 1}})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected 2 requests (429 then reissue), got %d", calls)
	}
	if bodies[0] != bodies[1] {
		t.Errorf("reissued body differs: %q vs %q", bodies[0], bodies[1])
	}
	if body, ok := out.(map[string]any); !ok || body["done"] != true {
		t.Errorf("Post() = %v", out)
	}
}

func TestClient_handleRetryAfter(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantErr     bool
		errContains string
	}{
		{
			name:    "delta seconds",
			header:  "120",
			wantErr: false,
		},
		{
			name:    "http date",
			header:  "Wed, 21 Oct 2065 07:28:00 GMT",
			wantErr: false,
		},
		{
			name:        "empty header",
			header:      "",
			wantErr:     true,
			errContains: "missing Retry-After header",
		},
		{
			name:        "invalid format",
			header:      "not-a-delay",
			wantErr:     true,
			errContains: "invalid Retry-After header",
		},
		{
			name:    "zero seconds",
			header:  "0",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{}
			err := c.handleRetryAfter(tt.header)

			if (err != nil) != tt.wantErr {
				t.Errorf("handleRetryAfter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && err != nil && tt.errContains != "" {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf(
						"handleRetryAfter() error = %v, should contain %q",
						err,
						tt.errContains,
					)
				}
			}
		})
	}
}

func TestClient_handleRetryAfter_UpdatesTime(t *testing.T) {
	c := &Client{}

	if err := c.handleRetryAfter("3600"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Now().Add(time.Hour)
	if c.retryAfter.Before(want.Add(-time.Minute)) || c.retryAfter.After(want.Add(time.Minute)) {
		t.Errorf("retryAfter = %v, want about %v", c.retryAfter, want)
	}
}

func TestClient_handleRetryAfter_OnlyUpdatesIfLater(t *testing.T) {
	c := &Client{}

	futureTime := time.Now().Add(2 * time.Hour)
	c.retryAfter = futureTime

	// An earlier delay must not shorten the window.
	err := c.handleRetryAfter("60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.retryAfter.Equal(futureTime) {
		t.Errorf(
			"retryAfter should not be updated to earlier time, got %v, want %v",
			c.retryAfter,
			futureTime,
		)
	}
}

func TestClient_wait_NoWaiting(t *testing.T) {
	c := &Client{}
	c.retryAfter = time.Now().Add(-1 * time.Second)

	start := time.Now()
	err := c.wait(context.Background())
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("wait() error = %v, want nil", err)
	}
	if elapsed > 100*time.Millisecond {
		t.Errorf("wait() took %v, should be nearly instant", elapsed)
	}
}

func TestClient_wait_WaitsUntilTime(t *testing.T) {
	c := &Client{}

	waitDuration := 200 * time.Millisecond
	c.retryAfter = time.Now().Add(waitDuration)

	start := time.Now()
	err := c.wait(context.Background())
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("wait() error = %v, want nil", err)
	}
	if elapsed < waitDuration-50*time.Millisecond {
		t.Errorf("wait() took %v, expected at least %v", elapsed, waitDuration-50*time.Millisecond)
	}
}

func TestClient_wait_ContextCancellation(t *testing.T) {
	c := &Client{}
	c.retryAfter = time.Now().Add(10 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := c.wait(ctx)
	elapsed := time.Since(start)

	if err != context.Canceled {
		t.Errorf("wait() error = %v, want context.Canceled", err)
	}
	if elapsed > 1*time.Second {
		t.Errorf("wait() took %v, should return quickly after cancellation", elapsed)
	}
}

func TestClient_rewindBody_NoBody(t *testing.T) {
	c := &Client{}

	tests := []struct {
		name string
		body io.ReadCloser
	}{
		{
			name: "nil body",
			body: nil,
		},
		{
			name: "http.NoBody",
			body: http.NoBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com", tt.body)

			err := c.rewindBody(req)
			if err != nil {
				t.Errorf("rewindBody() error = %v, want nil for %s", err, tt.name)
			}
		})
	}
}

func TestClient_rewindBody_WithGetBody(t *testing.T) {
	c := &Client{}

	bodyContent := []byte("test request body")
	body := bytes.NewReader(bodyContent)

	req, err := http.NewRequest(http.MethodPost, "http://example.com", body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := io.ReadAll(req.Body); err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	if err := c.rewindBody(req); err != nil {
		t.Fatalf("rewindBody() error = %v", err)
	}

	rewoundContent, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("failed to read rewound body: %v", err)
	}

	if !bytes.Equal(rewoundContent, bodyContent) {
		t.Errorf("rewound body = %q, want %q", rewoundContent, bodyContent)
	}
}

func TestClient_rewindBody_NoGetBody(t *testing.T) {
	c := &Client{}

	req, err := http.NewRequest(
		http.MethodPost,
		"http://example.com",
		io.NopCloser(strings.NewReader("test")),
	)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.GetBody = nil

	err = c.rewindBody(req)
	if err == nil {
		t.Error("rewindBody() should return error when GetBody is nil")
	}

	if !strings.Contains(err.Error(), "GetBody is nil") {
		t.Errorf("rewindBody() error = %v, should mention GetBody is nil", err)
	}
}

func TestClient_handleRetryAfter_ConcurrentAccess(t *testing.T) {
	c := &Client{}

	done := make(chan bool)

	for i := range 10 {
		go func(i int) {
			_ = c.handleRetryAfter(strconv.Itoa(i + 1))
			done <- true
		}(i)
	}

	for range 10 {
		<-done
	}

	if c.retryAfter.IsZero() {
		t.Error("retryAfter should be set after concurrent updates")
	}
}
