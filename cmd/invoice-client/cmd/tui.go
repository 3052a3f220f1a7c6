package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal client",
	Long: `Start the interactive terminal client.

Type an invoice number and press enter to preview it. ctrl+d saves the PDF
of the previewed invoice into --output-dir, esc dismisses the notice and
ctrl+c quits.

Logs go to --log-file only; without it the terminal client logs nothing.

Examples:
  invoice-client tui
  invoice-client tui --api-url http://localhost:3000 --output-dir ~/facturas --log-file client.log`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// stderr logging would corrupt the screen
	logger := zap.NewNop()
	if logFile != "" {
		var err error
		logger, err = newLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	ctrl := client.New(newAPIClient(logger), client.DirSaver{Dir: outputDir},
		client.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("terminal client starting",
		zap.String("api_url", apiURL),
		zap.String("output_dir", outputDir))
	return tui.Run(ctx, ctrl)
}
