// Package api talks to the backend hello endpoint.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"hellonerd/internal/logging"

	"github.com/google/uuid"
)

// ErrNotObject is the decode cause for a JSON body that is null.
var ErrNotObject = errors.New("response body is not a JSON object")

// DefaultPath is the endpoint the page fetches.
const DefaultPath = "/api/hello"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Payload is the backend response. Only Message is read; other fields
// are ignored and a missing message decodes as "".
type Payload struct {
	Message string `json:"message"`
}

// Client fetches the hello payload from one backend.
type Client struct {
	baseURL   *url.URL
	path      string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	calls     atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithPath overrides DefaultPath.
func WithPath(path string) Option {
	return func(c *Client) {
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL:   u,
		path:      DefaultPath,
		http:      &http.Client{},
		userAgent: "hellonerd",
	}
	for _, opt := range opts {
		opt(c)
	}
	logging.API("client for %s (timeout %v)", c.URL(), c.timeout)
	return c, nil
}

// URL returns the absolute endpoint URL.
func (c *Client) URL() string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + c.path
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// CallCount reports how many requests this client has issued.
func (c *Client) CallCount() int64 { return c.calls.Load() }

// Hello issues one GET to the endpoint and decodes the JSON body.
//
// The status code is not checked: any body that decodes is a success.
// Transport failures come back wrapped in *url.Error and decode failures
// wrapped with the endpoint path; Description strips both to the cause.
func (c *Client) Hello(ctx context.Context) (*Payload, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := uuid.New().String()
	log := logging.Get(logging.CategoryAPI).With("request_id", reqID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.calls.Add(1)
	start := time.Now()
	log.Debug("GET %s", req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("GET %s failed after %v: %v", req.URL, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("GET %s returned %s; decoding body anyway", req.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("GET %s: reading body: %v", req.URL, err)
		return nil, err
	}

	// Unmarshal rejects trailing data after the first value.
	var payload *Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("decode %s: %v", c.path, err)
		return nil, &DecodeError{Path: c.path, Status: resp.StatusCode, Err: err}
	}
	if payload == nil {
		log.Error("decode %s: %v", c.path, ErrNotObject)
		return nil, &DecodeError{Path: c.path, Status: resp.StatusCode, Err: ErrNotObject}
	}

	log.Info("GET %s -> %d in %v", req.URL, resp.StatusCode, time.Since(start))
	return payload, nil
}

// DecodeError reports a response body that is not a JSON object.
type DecodeError struct {
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (status %d): %v", e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Description returns the user-facing description of a fetch failure:
// the transport cause for network errors and the decoder message for
// parse errors. Other errors are returned as-is.
func Description(err error) string {
	if err == nil {
		return ""
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) && decErr.Err != nil {
		return decErr.Err.Error()
	}
	return err.Error()
}
