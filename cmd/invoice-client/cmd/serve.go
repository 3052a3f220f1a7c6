package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long: `Start a web server with the invoice page.

Routes:
  - GET /                             - Invoice page (?numero= looks up and previews)
  - GET /api/obtener-factura/:numero  - Invoice JSON relayed from the API
  - GET /api/generar-pdf/:numero      - PDF relayed as factura_{numero}.pdf
  - GET /api/info/:numero             - Page count and size of the PDF
  - GET /api/exportar-excel/:numero   - Invoice as factura_{numero}.xlsx
  - GET /health                       - Health check

Examples:
  # Start server on default port
  invoice-client serve

  # Point at another API
  invoice-client serve --address :9000 --api-url http://invoices.internal:3000

  # Start in debug mode
  invoice-client serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	config := &server.Config{
		Address:      serverAddr,
		APIURL:       apiURL,
		Timeout:      timeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       logger,
	}

	srv := server.NewServer(config)

	// Shut down gracefully on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting server on %s\n", serverAddr)
	fmt.Printf("Invoice API: %s\n", apiURL)
	logger.Info("server starting",
		zap.String("address", serverAddr),
		zap.String("api_url", apiURL))

	if err := srv.Run(ctx); err != nil {
		return err
	}
	fmt.Println("\nServer stopped")
	return nil
}
