package invoicelib

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/api"
	"github.com/rezonia/invoice-client/internal/client"
)

// Options configures NewInvoiceClient
type Options struct {
	// BaseURL is the root of the invoice API
	BaseURL string
	// OutputDir receives downloaded PDFs
	OutputDir string
	// Timeout bounds each API request; zero means no timeout
	Timeout time.Duration
	// NoticeTTL is how long a notice stays up
	NoticeTTL time.Duration
	Logger    *zap.Logger
}

// DefaultOptions returns options read from INVOICE_API_URL and
// INVOICE_OUTPUT_DIR, falling back to http://localhost:3000 and the
// working directory.
func DefaultOptions() Options {
	opts := Options{
		BaseURL:   os.Getenv("INVOICE_API_URL"),
		OutputDir: os.Getenv("INVOICE_OUTPUT_DIR"),
		NoticeTTL: client.DefaultNoticeTTL,
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:3000"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return opts
}

// NewInvoiceClient creates a controller talking to the API at opts.BaseURL
func NewInvoiceClient(opts Options) *InvoiceClient {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	apiOpts := []api.ClientOption{api.WithLogger(logger)}
	if opts.Timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(opts.Timeout))
	}

	return client.New(
		api.NewClient(opts.BaseURL, apiOpts...),
		client.DirSaver{Dir: opts.OutputDir},
		client.WithLogger(logger),
		client.WithNoticeTTL(opts.NoticeTTL),
	)
}
