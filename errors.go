package magento

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is kept for
// diagnostics.
const maxErrorBody = 1 << 20

// APIError is returned when the API responds with a non-2xx status. The
// raw body is kept so failures can be diagnosed without reissuing the
// request.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte

	// Message, Parameters, and Trace are filled from Magento's JSON error
	// envelope when the response carries one.
	Message    string
	Parameters any
	Trace      string
}

// newAPIError reads, bounds, and closes the response body.
func newAPIError(req *http.Request, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	e := &APIError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.URL.Path,
		Body:       body,
	}

	if len(body) > 0 && body[0] == '{' {
		var envelope struct {
			Message    string `json:"message"`
			Parameters any    `json:"parameters"`
			Trace      string `json:"trace"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			e.Message = envelope.Message
			e.Parameters = envelope.Parameters
			e.Trace = envelope.Trace
		}
	}

	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.InterpolatedMessage()
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// InterpolatedMessage substitutes the envelope parameters into the
// message. Magento uses positional "%1", "%2", ... placeholders with list
// parameters and "%name" placeholders with map parameters.
func (e *APIError) InterpolatedMessage() string {
	msg := e.Message

	switch params := e.Parameters.(type) {
	case []any:
		for i, p := range params {
			msg = strings.ReplaceAll(msg, fmt.Sprintf("%%%d", i+1), fmt.Sprint(p))
		}
	case map[string]any:
		for name, p := range params {
			msg = strings.ReplaceAll(msg, "%"+name, fmt.Sprint(p))
		}
	}

	return msg
}

// ClientError reports whether the request itself was at fault (4xx).
func (e *APIError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ServerError reports whether the remote service failed (5xx).
func (e *APIError) ServerError() bool {
	return e.StatusCode >= 500
}

// IsNotFound reports whether err is an [APIError] with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// TransportError is returned when the HTTP request could not complete at
// the network level. It wraps the underlying cause.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}
