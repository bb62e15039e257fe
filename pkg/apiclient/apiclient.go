// Package apiclient is the shared HTTP client for the backend REST API.
// It attaches the bearer token of the active session to every request,
// encodes/decodes JSON bodies, and maps failures onto the module's
// typed error kinds (RemoteError for non-2xx responses, ErrTimeout for
// exceeded deadlines).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quanan/internal/models"
)

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Client performs authenticated JSON requests against the backend.
type Client struct {
	base   *url.URL
	http   HTTPClient
	tokens TokenSource
}

// New builds a Client for the given base URL with a default http.Client
// honoring the supplied timeout. tokens may be nil for an
// unauthenticated client.
func New(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, tokens)
}

// NewWithHTTPClient builds a Client around a caller-supplied HTTPClient.
func NewWithHTTPClient(baseURL string, hc HTTPClient, tokens TokenSource) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: parsed, http: hc, tokens: tokens}, nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.JSON(ctx, http.MethodGet, path, nil, out, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, header http.Header) error {
	return c.JSON(ctx, http.MethodPost, path, body, out, header)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, http.MethodPut, path, body, out, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.JSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// JSON performs one request. body is marshaled when non-nil; out is
// decoded into when non-nil and the response succeeds. Extra headers
// (e.g. Idempotency-Key) may be supplied via header.
func (c *Client) JSON(ctx context.Context, method, path string, body, out any, header http.Header) error {
	req, err := c.newRequest(ctx, method, path, body, header)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return fmt.Errorf("%w: %s %s", models.ErrTimeout, method, path)
		}
		return &models.RemoteError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.RemoteError{StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, header http.Header) (*http.Request, error) {
	u := *c.base
	// Split off any query string first: appending it to u.Path would get
	// the '?' percent-encoded by URL.String().
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		u.RawQuery = path[idx+1:]
		path = path[:idx]
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// errorFromResponse maps a non-2xx response to a RemoteError, carrying
// the server-reported message when the body contains one.
func errorFromResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	return &models.RemoteError{StatusCode: resp.StatusCode, Message: msg}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
