package api

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

	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/model"
)

const (
	// DefaultInvoicePath is the lookup endpoint, %s is the escaped invoice number
	DefaultInvoicePath = "/api/obtener-factura/%s"
	// DefaultPDFPath is the PDF endpoint, %s is the escaped invoice number
	DefaultPDFPath = "/api/generar-pdf/%s"

	// RequestIDHeader carries a per-request id for log correlation
	RequestIDHeader = "X-Request-Id"
)

// Client talks to the invoice lookup and PDF endpoints
type Client struct {
	baseURL     string
	httpClient  *http.Client
	invoicePath string
	pdfPath     string
	logger      *zap.Logger
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	httpClient  *http.Client
	timeout     time.Duration
	invoicePath string
	pdfPath     string
	logger      *zap.Logger
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.httpClient = c
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithInvoicePath overrides the lookup path template
func WithInvoicePath(path string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.invoicePath = path
	}
}

// WithPDFPath overrides the PDF path template
func WithPDFPath(path string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.pdfPath = path
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	cfg := &clientConfig{
		invoicePath: DefaultInvoicePath,
		pdfPath:     DefaultPDFPath,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	} else if cfg.timeout > 0 {
		clone := *httpClient
		clone.Timeout = cfg.timeout
		httpClient = &clone
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		invoicePath: cfg.invoicePath,
		pdfPath:     cfg.pdfPath,
		logger:      cfg.logger,
	}
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchInvoice looks up an invoice and decodes it
func (c *Client) FetchInvoice(ctx context.Context, number string) (*model.Invoice, error) {
	raw, err := c.FetchInvoiceJSON(ctx, number)
	if err != nil {
		return nil, err
	}

	var inv model.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, model.NewRequestError(model.OpLookup, number, http.StatusOK,
			fmt.Errorf("decode invoice: %w", err))
	}
	return &inv, nil
}

// FetchInvoiceJSON looks up an invoice and returns the body untouched.
// The body must be a JSON object.
func (c *Client) FetchInvoiceJSON(ctx context.Context, number string) (json.RawMessage, error) {
	body, err := c.get(ctx, model.OpLookup, c.invoicePath, number)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, model.NewRequestError(model.OpLookup, number, http.StatusOK,
			fmt.Errorf("response is not a JSON object"))
	}
	return json.RawMessage(trimmed), nil
}

// FetchPDF downloads the generated PDF for an invoice
func (c *Client) FetchPDF(ctx context.Context, number string) ([]byte, error) {
	return c.get(ctx, model.OpPDF, c.pdfPath, number)
}

func (c *Client) get(ctx context.Context, op model.Op, pathTemplate, number string) ([]byte, error) {
	endpoint := c.baseURL + fmt.Sprintf(pathTemplate, url.PathEscape(number))
	requestID := ensureRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.NewRequestError(op, number, 0, err)
	}
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("invoice api request failed",
			zap.String("op", string(op)),
			zap.String("invoice_number", number),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, model.NewRequestError(op, number, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("invoice api response",
		zap.String("op", string(op)),
		zap.String("invoice_number", number),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is ignored on failure; drain it so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, model.NewRequestError(op, number, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewRequestError(op, number, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}
