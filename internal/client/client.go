// Package client talks to the studio REST API. One Client is shared by the
// resource services; none of them hold state of their own and all are safe
// for concurrent use.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client performs JSON requests against the API base URL
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client

	Auth     *AuthService
	Sessions *SessionService
	Teachers *TeacherService
	Users    *UserService
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// still wrapped to attach bearer tokens.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for baseURL. When tokens is non-nil, every request
// carries the token it yields; requests go out unauthenticated while it
// returns an error (e.g. nobody is logged in).
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if tokens != nil {
		wrapped := *c.httpClient
		wrapped.Transport = &bearerTransport{source: tokens, base: c.httpClient.Transport}
		c.httpClient = &wrapped
	}

	c.Auth = &AuthService{client: c}
	c.Sessions = &SessionService{client: c}
	c.Teachers = &TeacherService{client: c}
	c.Users = &UserService{client: c}

	return c, nil
}

// do sends a request to path (relative to the base URL), JSON-encoding in
// when non-nil and decoding the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// bearerTransport sets the Authorization header from a token source
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	tok, err := t.source.Token()
	if err != nil {
		return base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	tok.SetAuthHeader(authed)
	return base.RoundTrip(authed)
}
