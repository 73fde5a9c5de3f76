package magento

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenStore holds the bearer token used for API calls. Integration
// tokens are static; admin tokens obtained through login expire and are
// renewed shortly before the expiry recorded in their JWT claims.
type tokenStore struct {
	sync.Mutex

	token    string
	username string
	password string

	expiresAt time.Time
}

// jwtParser only extracts claims; admin tokens cannot be verified
// client-side because Magento does not publish the signing key.
var jwtParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// token returns a bearer token, logging in first if the current one is
// missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.auth.Lock()
	defer c.auth.Unlock()

	if c.auth.token != "" && !c.auth.expired(time.Now()) {
		return c.auth.token, nil
	}

	if c.auth.username == "" {
		return "", ErrMissingCredentials
	}

	if err := c.login(ctx); err != nil {
		return "", err
	}

	return c.auth.token, nil
}

// expired reports whether the token needs renewing. Tokens without a
// known expiry (integration tokens, opaque admin tokens from Magento
// before 2.4.4) never do.
func (ts *tokenStore) expired(now time.Time) bool {
	if ts.expiresAt.IsZero() {
		return false
	}

	return now.Add(2 * time.Minute).After(ts.expiresAt)
}

type adminTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login obtains an admin token. The caller must hold the store lock.
func (c *Client) login(ctx context.Context) error {
	req, err := c.newRequest(ctx,
		http.MethodPost,
		"/V1/integration/admin/token",
		nil,
		adminTokenRequest{Username: c.auth.username, Password: c.auth.password},
	)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(req, resp)
	}

	// The endpoint returns the token as a bare JSON string.
	var token string
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	c.auth.update(token)
	return nil
}

// update stores the token and, when it is a JWT (Magento 2.4.4 and
// later), records its expiry so the next call renews it proactively.
// Opaque tokens are used as-is.
func (ts *tokenStore) update(token string) {
	ts.token = token
	ts.expiresAt = time.Time{}

	claims := jwt.MapClaims{}
	if _, _, err := jwtParser.ParseUnverified(token, claims); err != nil {
		return
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}

	ts.expiresAt = exp.Time
}
