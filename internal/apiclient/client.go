// Package apiclient talks to the social backend's REST API on behalf of the
// friends frontend and the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nfrund/friends/internal/domain"
)

// Client provides typed access to the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	timeout    time.Duration
	hasTimeout bool
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The client is not
// modified; WithTimeout applies to a copy.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, errors.New("api base url is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(cli)
	}
	if cli.hasTimeout {
		hc := *cli.httpClient
		hc.Timeout = cli.timeout
		cli.httpClient = &hc
	}
	return cli, nil
}

// request describes one call. Exactly one of jsonBody and rawBody may be set.
type request struct {
	method      string
	path        string
	token       string
	jsonBody    any
	rawBody     io.Reader
	contentType string
}

// send performs the request and returns the response for a 2xx status. Any
// other outcome is converted to a *domain.APIError.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body := r.rawBody
	contentType := r.contentType
	if r.jsonBody != nil {
		payload, err := json.Marshal(r.jsonBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := strings.TrimSpace(r.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.KindNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		kind := domain.KindHTTP
		if resp.StatusCode == http.StatusUnauthorized {
			kind = domain.KindUnauthorized
		}
		return nil, &domain.APIError{Kind: kind, Status: resp.StatusCode, Body: extractError(resp.Body)}
	}
	return resp, nil
}

// do performs a JSON round trip, decoding the response into v when non-nil.
func (c *Client) do(ctx context.Context, r request, v any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.APIError{Kind: domain.KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// extractError pulls a human readable message out of an error body. The
// backend answers with {"detail": "..."} or with a map of field errors.
func extractError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if detail, ok := payload["detail"].(string); ok {
		return strings.TrimSpace(detail)
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		switch v := payload[k].(type) {
		case string:
			parts = append(parts, k+": "+v)
		case []any:
			msgs := make([]string, 0, len(v))
			for _, m := range v {
				msgs = append(msgs, fmt.Sprint(m))
			}
			parts = append(parts, k+": "+strings.Join(msgs, " "))
		}
	}
	return strings.Join(parts, "; ")
}
