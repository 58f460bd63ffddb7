// Package authclient talks to the credential backend. The bearer token is
// persisted across sessions and attached to every request by a transport
// wrapper, so callers never handle it directly.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fishit/fishit/internal/kvcache"
)

// ErrUnauthorized is returned on invalid credentials or an expired token.
var ErrUnauthorized = errors.New("authentication failed")

// User is the account profile returned by the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateData carries the optional account fields to change.
type UpdateData struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Client is an authenticated HTTP client for the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *kvcache.Cache
}

// New creates a client for the backend at baseURL. The token, when
// present in the cache, rides along on every request.
func New(baseURL string, cache *kvcache.Cache) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: &tokenTransport{cache: cache, base: http.DefaultTransport},
		},
		cache: cache,
	}
}

// tokenTransport injects the stored bearer token into outgoing requests.
type tokenTransport struct {
	cache *kvcache.Cache
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var token string
	if t.cache != nil && t.cache.Get(kvcache.KeyAuthToken, &token) && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// errorResponse is the backend's error payload.
type errorResponse struct {
	Message string `json:"message"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, "POST", "/api/register", body, nil)
}

// Login authenticates and stores the returned token for future requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "POST", "/api/login", body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("login response carried no token")
	}

	if c.cache != nil {
		c.cache.Set(kvcache.KeyAuthToken, resp.Token)
	}
	return nil
}

// Me fetches the current account. An expired or invalid token clears the
// stored credential so the next screen is the login form.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, "GET", "/api/me", nil, &user)
	if errors.Is(err, ErrUnauthorized) {
		c.Logout()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update changes account fields and returns the updated profile.
func (c *Client) Update(ctx context.Context, updates UpdateData) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, "PUT", "/api/users", updates, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Delete removes the account and clears the stored token.
func (c *Client) Delete(ctx context.Context) error {
	if err := c.do(ctx, "DELETE", "/api/users", nil, nil); err != nil {
		return err
	}
	c.Logout()
	return nil
}

// Logout discards the stored token.
func (c *Client) Logout() {
	if c.cache != nil {
		c.cache.Delete(kvcache.KeyAuthToken)
	}
}

// IsAuthenticated reports whether a token is stored. It does not verify
// the token against the backend.
func (c *Client) IsAuthenticated() bool {
	var token string
	return c.cache != nil && c.cache.Get(kvcache.KeyAuthToken, &token) && token != ""
}

// do runs one JSON request/response cycle against the backend.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reaching backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message != "" {
			return fmt.Errorf("%s: %w", e.Message, ErrUnauthorized)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message != "" {
			return errors.New(e.Message)
		}
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
