// Package upstream is the HTTP client for the package API that owns
// customers, warehouses, package types and packages.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/package-form/internal/circuitbreaker"
	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/metrics"
)

// Upstream endpoints, relative to the base URL.
const (
	PathPackageTypes = "/api/PackageTypes"
	PathWarehouses   = "/api/Warehouse"
	PathCustomers    = "/api/Customer"
	PathPackages     = "/api/Packages"
)

// RequestIDHeader carries the caller's request id to the package API.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type requestIDKey struct{}

// WithRequestID returns a context whose upstream requests carry id in the
// X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCircuitBreaker routes every call through cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// CreateResult is the body of a successful create request.
type CreateResult struct {
	Message string `json:"message"`
}

// Client talks to the package API. It is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// New creates a client for cfg.BaseURL. An empty base URL issues requests
// against relative paths, which only works behind a custom transport.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Breaker returns the configured circuit breaker, or nil.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// ListPackageTypes fetches every package type.
func (c *Client) ListPackageTypes(ctx context.Context) ([]model.PackageType, error) {
	var out []model.PackageType
	err := c.getJSON(ctx, "package_types", PathPackageTypes, nil, &out)
	return out, err
}

// ListPackageTypesForWarehouse fetches the package types offered by one
// warehouse. An empty id is still sent as an empty warehouse_id parameter.
func (c *Client) ListPackageTypesForWarehouse(ctx context.Context, warehouseID model.ID) ([]model.PackageType, error) {
	var out []model.PackageType
	q := url.Values{"warehouse_id": []string{warehouseID.String()}}
	err := c.getJSON(ctx, "package_types_scoped", PathPackageTypes, q, &out)
	return out, err
}

// ListWarehouses fetches warehouse rows as sent, duplicates included.
func (c *Client) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	var out []model.Warehouse
	err := c.getJSON(ctx, "warehouses", PathWarehouses, nil, &out)
	return out, err
}

// ListCustomers fetches every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := c.getJSON(ctx, "customers", PathCustomers, nil, &out)
	return out, err
}

// CreatePackage posts payload. A non-2xx answer with an {"error": ...} body
// returns *RejectedError; one without a decodable body returns the decode error.
func (c *Client) CreatePackage(ctx context.Context, payload model.PackagePayload) (CreateResult, error) {
	var result CreateResult
	body, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("encode payload: %w", err)
	}

	err = c.call(ctx, "packages", func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodPost, PathPackages, nil, bytes.NewReader(body))
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}

		var rejection struct {
			Error *string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			return fmt.Errorf("decode error response (status %d): %w", resp.StatusCode, err)
		}
		msg := http.StatusText(resp.StatusCode)
		if rejection.Error != nil {
			msg = *rejection.Error
		}
		return &RejectedError{Code: resp.StatusCode, Message: msg}
	})
	return result, err
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.call(ctx, endpoint, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &StatusError{
				Endpoint: path,
				Code:     resp.StatusCode,
				Body:     strings.TrimSpace(string(b)),
			}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	})
}

// call applies the per-request timeout, the breaker and metrics around fn.
func (c *Client) call(ctx context.Context, endpoint string, fn func(context.Context) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, func() error { return fn(ctx) })
	} else {
		err = fn(ctx)
	}
	metrics.RecordUpstreamRequest(endpoint, outcome(err), time.Since(start))
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if query != nil {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func outcome(err error) string {
	var rejected *RejectedError
	var status *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &rejected):
		return "rejected"
	case errors.As(err, &status):
		return "status_error"
	default:
		return "error"
	}
}
