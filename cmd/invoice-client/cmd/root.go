package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rezonia/invoice-client/internal/api"
)

const defaultAPIURL = "http://localhost:3000"

var (
	version = "1.0.0"

	// Global flags
	verbose   bool
	apiURL    string
	outputDir string
	logFile   string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "invoice-client",
	Short: "Look up invoices, preview them and download their PDFs",
	Long: `Invoice Client talks to an invoice API that serves
  GET /api/obtener-factura/{numero}  invoice data as JSON
  GET /api/generar-pdf/{numero}      the generated PDF

It previews invoices in the terminal, serves a web page that does the same,
and saves PDFs as factura_{numero}.pdf.

Examples:
  # Interactive terminal client
  invoice-client tui

  # Web front end on :8080 relaying to the API
  invoice-client serve --api-url http://localhost:3000

  # One-shot lookup
  invoice-client fetch FAC-2025-001 -f json

  # Save and check a PDF
  invoice-client download FAC-2025-001 --output-dir invoices --verify`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Invoice API base URL (env: INVOICE_API_URL, default "+defaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory for downloaded PDFs (env: INVOICE_OUTPUT_DIR, default .)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (env: INVOICE_LOG_FILE)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout per API request (0 means none)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// API base URL
	if apiURL == "" {
		apiURL = os.Getenv("INVOICE_API_URL")
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	// Download directory
	if outputDir == "" {
		outputDir = os.Getenv("INVOICE_OUTPUT_DIR")
	}
	if outputDir == "" {
		outputDir = "."
	}
	// Log file
	if logFile == "" {
		logFile = os.Getenv("INVOICE_LOG_FILE")
	}
}

// newLogger builds the process logger. Without a log file it writes to
// stderr, warnings only unless --verbose is set.
func newLogger() (*zap.Logger, error) {
	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
		if !verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}
	return config.Build()
}

func newAPIClient(logger *zap.Logger) *api.Client {
	opts := []api.ClientOption{api.WithLogger(logger)}
	if timeout > 0 {
		opts = append(opts, api.WithTimeout(timeout))
	}
	return api.NewClient(apiURL, opts...)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
