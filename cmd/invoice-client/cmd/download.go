package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/pdf"
)

var verifyDownload bool

var downloadCmd = &cobra.Command{
	Use:   "download <numero>",
	Short: "Look up an invoice and save its PDF",
	Long: `Look up an invoice and save its PDF as factura_{numero}.pdf in --output-dir.

The lookup runs first; the PDF is only requested for an invoice that exists.
With --verify the saved file is checked to be a well-formed PDF.

Examples:
  invoice-client download FAC-2025-001
  invoice-client download 1001 --output-dir invoices --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().BoolVar(&verifyDownload, "verify", false, "Check the saved file with a PDF parser")
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctrl := client.New(newAPIClient(logger), client.DirSaver{Dir: outputDir},
		client.WithLogger(logger))

	var last *client.Notice
	ctrl.Subscribe(func(s client.State) {
		if s.Notice != nil && (last == nil || last.ID != s.Notice.ID) {
			last = s.Notice
			fmt.Fprintf(os.Stderr, "[%s] %s\n", s.Notice.Severity, s.Notice.Message)
		}
	})

	ctx := context.Background()
	if err := ctrl.FetchAndRender(ctx, args[0]); err != nil {
		return err
	}
	if err := ctrl.DownloadCurrentPDF(ctx); err != nil {
		return err
	}

	path := ctrl.State().SavedPath
	fmt.Println(path)

	if !verifyDownload {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	info, err := pdf.Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	printVerbose("  Version: %s, Pages: %d, Size: %d bytes\n", info.Version, info.Pages, info.Size)
	return nil
}
