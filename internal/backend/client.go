// Package backend is the typed client for the upstream tourism REST API.
// The API is an external collaborator: this package owns the narrow
// contract (paths, auth headers, status mapping) and nothing else.
//
// Endpoints follow one pattern per resource kind:
//
//	GET    /{kind}          list
//	GET    /{kind}/{id}     detail
//	POST   /{kind}          create
//	PATCH  /{kind}/{id}     update
//	DELETE /{kind}/{id}     delete
//
// Requests carry a bearer token; a cookie jar keeps the session cookies
// some endpoints additionally rely on (dual scheme).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Client talks to the upstream API. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a Client for the API at baseURL. token is the portal's own
// bearer token; per-user tokens are layered on with WithToken.
func New(baseURL, token string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("backend.New: cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// WithToken returns a shallow copy of the client that authenticates with
// the given bearer token instead of the portal's own. The HTTP transport
// and cookie jar are shared.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// StatusError is a non-2xx upstream response that is neither not-found
// nor a validation failure. The portal maps it to a generic failure
// notification; auth flows map specific codes to specific messages.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.Code)
}

// errorBody is the upstream error envelope.
type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// do performs one request and decodes the response into out (when out is
// non-nil). No retries: failed operations surface to the caller, which
// owns the user-facing feedback.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	// A completed 2xx with an empty or null body means the record does
	// not exist (the upstream's convention for missing detail records).
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// statusError maps an upstream error response onto the domain taxonomy:
// 404 → ErrNotFound, 422 with field detail → FieldErrors, everything else
// (including 400) → StatusError carrying the raw code.
func (c *Client) statusError(code int, raw []byte) error {
	var envelope errorBody
	_ = json.Unmarshal(raw, &envelope) // best effort; an empty envelope is fine

	switch code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnprocessableEntity:
		if len(envelope.Error.Fields) > 0 {
			return domain.FieldErrors(envelope.Error.Fields)
		}
		msg := envelope.Error.Message
		if msg == "" {
			msg = "invalid input"
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	return &StatusError{Code: code, Message: envelope.Error.Message}
}

// WaitReady polls the upstream health endpoint with capped exponential
// backoff until it answers or timeout elapses. Used once at boot; nothing
// else in the client retries.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	backoff := retry.WithMaxDuration(timeout,
		retry.WithCappedDuration(2*time.Second,
			retry.NewExponential(200*time.Millisecond)))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
