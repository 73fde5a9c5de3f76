package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// newRequest creates an HTTP request for an API path. Paths are relative
// to the REST root and start with "/V1/"; the "/rest/<scope>" prefix is
// added here. The base URL is stored without a trailing slash, so joining
// never introduces a double slash.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	params url.Values,
	body any,
) (*http.Request, error) {
	u := c.baseURL + "/rest/" + c.scope + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header = c.header.Clone()

	return req, nil
}

// call is the generic entry point shared by every endpoint helper: it
// builds the request, executes it, and decodes the JSON response into v.
// Exactly one request goes out per call, except for a server-mandated
// 429 Retry-After reissue.
func (c *Client) call(ctx context.Context, method, path string, params url.Values, body, v any) error {
	if c.readOnly && method != http.MethodGet {
		return fmt.Errorf("%s %s: %w", method, path, ErrReadOnly)
	}

	return c.callBypass(ctx, method, path, params, body, v)
}

// callBypass is call without the read-only guard, for endpoints that use
// a mutating verb to read data.
func (c *Client) callBypass(ctx context.Context, method, path string, params url.Values, body, v any) error {
	req, err := c.newRequest(ctx, method, path, params, body)
	if err != nil {
		return err
	}

	return c.doJSON(req, v)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	return c.call(ctx, http.MethodGet, path, params, nil, v)
}

func (c *Client) postJSON(ctx context.Context, path string, body, v any) error {
	return c.call(ctx, http.MethodPost, path, nil, body, v)
}

func (c *Client) putJSON(ctx context.Context, path string, body, v any) error {
	return c.call(ctx, http.MethodPut, path, nil, body, v)
}

func (c *Client) deleteJSON(ctx context.Context, path string, v any) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, v)
}

// getOptional is getJSON for endpoints where a 404 means the entity does
// not exist. It reports whether the entity was found.
func (c *Client) getOptional(ctx context.Context, path string, params url.Values, v any) (bool, error) {
	err := c.getJSON(ctx, path, params, v)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Get issues a GET against an arbitrary API path and returns the decoded
// JSON body. It is the escape hatch for endpoints without a dedicated
// helper.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (any, error) {
	var out any
	if err := c.call(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Post issues a POST with a JSON body against an arbitrary API path and
// returns the decoded response.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	var out any
	if err := c.call(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Put issues a PUT with a JSON body against an arbitrary API path and
// returns the decoded response.
func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	var out any
	if err := c.call(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Delete issues a DELETE against an arbitrary API path. The result is nil
// for endpoints that answer with an empty body.
func (c *Client) Delete(ctx context.Context, path string) (any, error) {
	var out any
	if err := c.call(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// doJSON executes the request and decodes the JSON response body into v.
// Empty bodies (successful DELETEs, 204s) leave v untouched.
func (c *Client) doJSON(req *http.Request, v any) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if v == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// send executes the request, waiting out any active rate-limit window
// first and attaching the bearer token. A 429 response updates the window
// from the Retry-After header and reissues the request.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if err := c.wait(req.Context()); err != nil {
		return nil, err
	}

	token, err := c.token(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.DebugContext(req.Context(), "magento request",
		"method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if resp.Body != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		if err := c.handleRetryAfter(resp.Header.Get("Retry-After")); err != nil {
			return nil, fmt.Errorf("too many requests: %w", err)
		}

		if err := c.rewindBody(req); err != nil {
			return nil, fmt.Errorf("cannot rewind body: %w", err)
		}

		return c.send(req)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(req, resp)
	}

	return resp, nil
}

// wait checks if the client is currently rate-limited.
// If so, it blocks until the reset time or until the context is canceled.
func (c *Client) wait(ctx context.Context) error {
	c.retryAfterMu.Lock()
	waitUntil := c.retryAfter
	c.retryAfterMu.Unlock()

	if time.Now().After(waitUntil) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(waitUntil)):
		return nil
	}
}

// handleRetryAfter updates the client's retry-after timestamp based on
// the Retry-After header, which carries either delta-seconds or an HTTP
// date.
func (c *Client) handleRetryAfter(header string) error {
	if header == "" {
		return errors.New("missing Retry-After header")
	}

	var t time.Time
	if secs, err := strconv.ParseInt(header, 10, 64); err == nil {
		t = time.Now().Add(time.Duration(secs) * time.Second)
	} else if ht, err := http.ParseTime(header); err == nil {
		t = ht
	} else {
		return fmt.Errorf("invalid Retry-After header %q", header)
	}

	c.retryAfterMu.Lock()
	defer c.retryAfterMu.Unlock()

	if t.After(c.retryAfter) {
		c.retryAfter = t
	}

	return nil
}

// rewindBody attempts to reset the request body for a reissue.
func (c *Client) rewindBody(req *http.Request) error {
	// If there is no body, there is nothing to rewind.
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	// If GetBody is nil, we cannot recreate the reader.
	// This happens with io.Pipe or raw io.Reader inputs.
	if req.GetBody == nil {
		return errors.New("cannot rewind body: GetBody is nil")
	}

	freshBody, err := req.GetBody()
	if err != nil {
		return err
	}

	req.Body = freshBody
	return nil
}
