// Package api implements the HTTP client for the football statistics
// backend. It is the single chokepoint for all outbound calls: every request
// gets the shared rate limiter, the configured timeout, and uniform error
// classification into the five-kind taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pmartineau/touchline/internal/model"
)

const (
	// DefaultBaseURL is the backend root every call is resolved against.
	// The backend exposes exactly one base; callers never bypass it.
	DefaultBaseURL = "http://localhost:8000/api"

	// DefaultTimeout bounds each individual request.
	DefaultTimeout = 10 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	Retries    int // extra attempts on transient errors; 0 = single attempt
	Debug      bool
}

// Client is the backend HTTP client.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	retries    int
	debug      bool
}

// New creates a Client. Zero-value options fall back to defaults.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5.0
	}
	burst := int(opts.RatePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    opts.Timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(opts.RatePerSec), burst),
		retries:    opts.Retries,
		debug:      opts.Debug,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// ─── Parameters ───────────────────────────────────────────────────────────────

// Params is a flat key/value parameter map for GET requests.
// Nil values and empty strings are skipped during serialization.
type Params map[string]interface{}

// encode serializes p into a query string with deterministic key order.
func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		v := p[k]
		if v == nil {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if s == "" {
			continue
		}
		values.Set(k, s)
	}
	return values.Encode()
}

// ─── Requests ─────────────────────────────────────────────────────────────────

// Get issues a GET against path with optional query parameters and decodes
// the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params Params, out interface{}) error {
	if q := params.encode(); q != "" {
		path += "?" + q
	}
	return c.Request(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Request(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Request(ctx, http.MethodDelete, path, nil, out)
}

// Request performs one logical call: rate limit, bounded retries on transient
// failures, and normalization of every failure into an *Error.
// NOT_FOUND and VALIDATION_ERROR are never retried.
func (c *Client) Request(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransport(ctx, err, c.timeout)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return newError(KindValidation, fmt.Sprintf("encoding request body: %v", err))
		}
	}

	attempts := 1 + c.retries
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))*500) * time.Millisecond
			if c.debug {
				slog.Debug("retrying after backoff", "attempt", attempt, "backoff", backoff)
			}
			select {
			case <-ctx.Done():
				return classifyTransport(ctx, ctx.Err(), c.timeout)
			case <-time.After(backoff):
			}
		}

		err := c.do(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(KindOf(err)) {
			return err
		}
	}
	return lastErr
}

// do performs a single HTTP round trip with the per-call timeout attached.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + path
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(callCtx, method, reqURL, bodyReader)
	if err != nil {
		return newError(KindValidation, fmt.Sprintf("building request: %v", err), "url", reqURL)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		slog.Debug("api request", "method", method, "url", reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(ctx, err, c.timeout)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(ctx, err, c.timeout)
	}

	if c.debug {
		slog.Debug("api response", "status", resp.StatusCode, "bytes", len(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyHTTP(resp.StatusCode, resp.Status, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return newError(KindServer, fmt.Sprintf("decoding response: %v", err),
			"status", resp.StatusCode)
	}
	return nil
}

// ─── Classification ───────────────────────────────────────────────────────────

// classifyTransport maps transport-level failures: timeout first, then
// network. The precedence matters — a deadline that expires mid-connect must
// report as a timeout, not as an unreachable backend.
func classifyTransport(ctx context.Context, err error, timeout time.Duration) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "the request took too long to respond",
			"timeout", timeout.String())
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return newError(KindTimeout, "the request took too long to respond",
			"timeout", timeout.String())
	}
	if errors.Is(err, context.Canceled) {
		return newError(KindNetwork, "request cancelled")
	}
	return newError(KindNetwork,
		"could not reach the backend; check that it is running",
		"cause", err.Error())
}

// classifyHTTP maps a non-2xx response. The message prefers the backend's
// human-readable detail field; the generic fallback keeps the raw status.
func classifyHTTP(statusCode int, status string, body []byte) *Error {
	message := fmt.Sprintf("HTTP %s", status)

	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Detail != "" {
		message = errBody.Detail
	}

	kind := KindServer
	switch {
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode >= 400 && statusCode < 500:
		kind = KindValidation
	}
	return newError(kind, message, "status", statusCode, "status_text", status)
}

// ─── Probes ───────────────────────────────────────────────────────────────────

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status     string `json:"status"`
	APIVersion string `json:"api_version"`
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var hs HealthStatus
	if err := c.Get(ctx, "/health", nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

// Status probes GET /status for the provider plan. Not every backend exposes
// it; callers fall back to plan detection when this fails.
func (c *Client) Status(ctx context.Context) (*model.Plan, error) {
	var raw struct {
		Plan struct {
			Type             string `json:"type"`
			AvailableSeasons struct {
				From int `json:"from"`
				To   int `json:"to"`
			} `json:"available_seasons"`
			CurrentRequests int `json:"current_requests"`
			MaxRequests     int `json:"max_requests"`
		} `json:"plan"`
	}
	if err := c.Get(ctx, "/status", nil, &raw); err != nil {
		return nil, err
	}
	if raw.Plan.Type == "" {
		return nil, newError(KindServer, "status response carried no plan")
	}
	return &model.Plan{
		Type:            model.PlanTier(raw.Plan.Type),
		AvailableFrom:   raw.Plan.AvailableSeasons.From,
		AvailableTo:     raw.Plan.AvailableSeasons.To,
		CurrentRequests: raw.Plan.CurrentRequests,
		MaxRequests:     raw.Plan.MaxRequests,
	}, nil
}
