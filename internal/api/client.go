// Package api implements typed wrappers over the RedSeam store REST API.
// Every operation is single-shot: one request, no retries, no coalescing.
// Non-2xx responses are translated into the typed errors in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"redseam/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client talks to the store API. Construct it once at the composition root
// and pass it down; it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New creates a Client. The cookie jar keeps cookie-based sessions working
// alongside the bearer header.
func New(baseURL string, timeout time.Duration, token TokenSource) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		token:   token,
	}, nil
}

// prepare sets the headers every request carries. The bearer header is only
// attached when a token exists.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (which may be nil for 204-style endpoints).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}, fallback string) error {
	reqID := uuid.NewString()[:8]
	rlog := logging.WithRequestID(logging.CategoryAPI, reqID)
	timer := logging.StartTimer(logging.CategoryAPI, method+" "+path)
	defer timer.Stop()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	c.prepare(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rlog.Debug("%s %s", method, u)
	resp, err := c.http.Do(req)
	if err != nil {
		rlog.Error("%s %s: %v", method, path, err)
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeError(resp, fmt.Sprintf("%s: %d", fallback, resp.StatusCode))
		rlog.Info("%s %s -> %d (%v)", method, path, resp.StatusCode, err)
		return err
	}

	rlog.Debug("%s %s -> %d", method, path, resp.StatusCode)
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
