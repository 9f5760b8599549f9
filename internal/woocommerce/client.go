// Package woocommerce is the order gateway: a thin client over the store's
// REST API (wc/v3). It holds the API credentials and translates dashboard
// filters into query parameters; the store stays authoritative for all
// order state.
//
// Every failure is reported as a structured *APIError, never a panic, so
// the HTTP layer can always render a readable message.
package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/pkg/httpclient"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/metrics"
)

// Transport error codes recognised by the diagnostics page. They mirror the
// codes the store connector used before, so the remediation texts still match.
const (
	CodeHostNotFound      = "ENOTFOUND"
	CodeConnectionRefused = "ECONNREFUSED"
	CodeValidation        = "EVALIDATION"
)

// Config carries the three required store values plus the API version.
// Construct explicitly (tests) or via ConfigFromEnv (production).
type Config struct {
	URL            string
	ConsumerKey    string
	ConsumerSecret string
	Version        string
}

// ConfigFromEnv builds a Config from the process configuration.
func ConfigFromEnv() Config {
	return Config{
		URL:            config.WooURL(),
		ConsumerKey:    config.WooConsumerKey(),
		ConsumerSecret: config.WooConsumerSecret(),
		Version:        config.WooVersion(),
	}
}

// Complete reports whether all three required values are present.
func (c Config) Complete() bool {
	return c.URL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// APIError is the structured failure result of a gateway call.
type APIError struct {
	Message    string          `json:"message"`
	Code       string          `json:"code,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Body       json.RawMessage `json:"responseData,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("woocommerce: %s (status %d)", e.Message, e.StatusCode)
	}
	return "woocommerce: " + e.Message
}

// IsValidation reports whether the error was raised before any network call.
func (e *APIError) IsValidation() bool { return e.Code == CodeValidation }

// Client is the order gateway. Construct with New; the HTTP transport is the
// shared httpclient.DefaultClient, which tests swap for a mock.
type Client struct {
	cfg Config
}

// New returns a gateway bound to the given store configuration.
func New(cfg Config) *Client {
	if cfg.Version == "" {
		cfg.Version = "wc/v3"
	}
	return &Client{cfg: cfg}
}

// Endpoint returns the absolute URL for an API path like "orders".
func (c *Client) Endpoint(path string) string {
	base := strings.TrimRight(c.cfg.URL, "/")
	return base + "/wp-json/" + c.cfg.Version + "/" + strings.TrimLeft(path, "/")
}

// ListOrders forwards the filter verbatim as query parameters and parses the
// pagination totals from the X-WP-Total / X-WP-TotalPages response headers.
// On any transport or non-2xx failure it returns an empty slice, total 0,
// totalPages 1 and the structured error.
func (c *Client) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, int, *APIError) {
	filter = filter.Normalize()

	q := url.Values{}
	if filter.Statuses != "" {
		q.Set("status", filter.Statuses)
	}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("per_page", strconv.Itoa(filter.PerPage))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	q.Set("orderby", filter.OrderBy)
	q.Set("order", filter.Order)

	resp, apiErr := c.get(ctx, "orders", q)
	if apiErr != nil {
		return []models.Order{}, 0, 1, apiErr
	}

	var orders []models.Order
	if err := resp.JSON(&orders); err != nil {
		// The store answered 2xx with a non-array body; treat as empty.
		logger.WithCtx(ctx).Warn("woocommerce: respuesta de pedidos no es un array", "error", err)
		orders = []models.Order{}
	}
	if orders == nil {
		orders = []models.Order{}
	}

	total, totalPages := parsePagination(resp)
	return orders, total, totalPages, nil
}

// parsePagination reads the X-WP headers; missing or malformed values
// default to total 0 and totalPages 1; totalPages is never below 1.
func parsePagination(resp *httpclient.Response) (total, totalPages int) {
	total = 0
	totalPages = 1

	if v, err := strconv.Atoi(resp.Header("X-WP-Total")); err == nil && v >= 0 {
		total = v
	}
	if v, err := strconv.Atoi(resp.Header("X-WP-TotalPages")); err == nil && v >= 1 {
		totalPages = v
	}
	return total, totalPages
}

// UpdateOrderStatus issues a partial update of just the status field.
// An empty orderID is rejected before any network call.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, *APIError) {
	if strings.TrimSpace(orderID) == "" {
		return nil, &APIError{
			Message: "ID de pedido no proporcionado",
			Code:    CodeValidation,
		}
	}

	resp, apiErr := c.put(ctx, "orders/"+orderID, map[string]string{"status": status})
	if apiErr != nil {
		return nil, apiErr
	}

	var order models.Order
	if err := resp.JSON(&order); err != nil {
		return nil, &APIError{Message: "respuesta de pedido no válida: " + err.Error()}
	}
	return &order, nil
}

// GetOrderNotes lists the notes attached to an order.
func (c *Client) GetOrderNotes(ctx context.Context, orderID string) ([]models.OrderNote, *APIError) {
	if strings.TrimSpace(orderID) == "" {
		return nil, &APIError{
			Message: "ID de pedido no proporcionado",
			Code:    CodeValidation,
		}
	}

	resp, apiErr := c.get(ctx, "orders/"+orderID+"/notes", nil)
	if apiErr != nil {
		return nil, apiErr
	}

	var notes []models.OrderNote
	if err := resp.JSON(&notes); err != nil {
		return nil, &APIError{Message: "respuesta de notas no válida: " + err.Error()}
	}
	return notes, nil
}

// SystemStatusInfo is the subset of the store's system report the
// diagnostics page shows.
type SystemStatusInfo struct {
	Environment struct {
		Version   string `json:"version"`
		WCVersion string `json:"wc_version"`
	} `json:"environment"`
}

// SystemStatus fetches the store's system report; the diagnostics probe uses
// it as the basic connectivity check.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatusInfo, *APIError) {
	resp, apiErr := c.get(ctx, "system_status", nil)
	if apiErr != nil {
		return nil, apiErr
	}

	var info SystemStatusInfo
	if err := resp.JSON(&info); err != nil {
		// A reachable store with an odd body still counts as connected.
		return &SystemStatusInfo{}, nil
	}
	return &info, nil
}

// ProbeGet performs a minimal read against path (per_page=1), for the
// diagnostics permission checks.
func (c *Client) ProbeGet(ctx context.Context, path string) *APIError {
	q := url.Values{}
	q.Set("per_page", "1")
	_, apiErr := c.get(ctx, path, q)
	return apiErr
}

// ProbePut performs a write-permission check against path with an empty
// payload, so no real data is modified.
func (c *Client) ProbePut(ctx context.Context, path string) *APIError {
	_, apiErr := c.put(ctx, path, map[string]string{})
	return apiErr
}

// ── Request plumbing ─────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, q url.Values) (*httpclient.Response, *APIError) {
	req := httpclient.Get(c.Endpoint(path))
	if q != nil {
		req.QueryValues(q)
	}
	return c.send(ctx, req, path, "GET")
}

func (c *Client) put(ctx context.Context, path string, body interface{}) (*httpclient.Response, *APIError) {
	req := httpclient.Put(c.Endpoint(path)).Body(body)
	return c.send(ctx, req, path, "PUT")
}

func (c *Client) send(ctx context.Context, req *httpclient.Request, path, method string) (*httpclient.Response, *APIError) {
	start := time.Now()
	endpoint := metricEndpoint(path)

	// wc/v3 accepts the key pair as query credentials; the store enforces
	// HTTPS for this form.
	req.Query("consumer_key", c.cfg.ConsumerKey)
	req.Query("consumer_secret", c.cfg.ConsumerSecret)

	resp, err := req.Send(ctx)
	if err != nil {
		metrics.ObserveStoreRequest(endpoint, method, 0, start)
		return nil, transportError(err)
	}

	metrics.ObserveStoreRequest(endpoint, method, resp.StatusCode, start)

	if !resp.OK() {
		return nil, statusError(resp)
	}
	return resp, nil
}

// metricEndpoint collapses paths like "orders/123" into their collection so
// metric cardinality stays bounded.
func metricEndpoint(path string) string {
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return path
}

// transportError classifies a failure that produced no HTTP response.
func transportError(err error) *APIError {
	apiErr := &APIError{Message: err.Error()}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		apiErr.Code = CodeHostNotFound
		return apiErr
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		apiErr.Code = CodeConnectionRefused
		return apiErr
	}
	return apiErr
}

// statusError builds the error for a non-2xx store response, keeping the raw
// payload so the UI can show what the store said.
func statusError(resp *httpclient.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(resp.Raw),
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Raw, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = fmt.Sprintf("Request failed with status code %d", resp.StatusCode)
	}
	return apiErr
}
