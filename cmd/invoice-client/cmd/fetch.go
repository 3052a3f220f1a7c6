package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-client/internal/model"
	"github.com/rezonia/invoice-client/internal/view"
)

var (
	fetchFormat string
	outputFile  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <numero>",
	Short: "Look up an invoice and print it",
	Long: `Look up one invoice and print it.

Formats:
  - table: the preview as aligned text (default)
  - json:  the decoded invoice plus consistency warnings
  - html:  a standalone page with the preview
  - xlsx:  a workbook with the line items and totals

Examples:
  invoice-client fetch FAC-2025-001
  invoice-client fetch FAC-2025-001 -f json
  invoice-client fetch 1001 -f html -o factura_1001.html
  invoice-client fetch 1001 -f xlsx -o factura_1001.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchFormat, "format", "f", "table", "Output format (table, json, html, xlsx)")
	fetchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := newAPIClient(logger)
	number := args[0]

	printVerbose("Fetching invoice %s from %s\n", number, client.BaseURL())
	inv, err := client.FetchInvoice(context.Background(), number)
	if err != nil {
		return err
	}

	result := &FetchResult{Number: number, Invoice: inv}
	for _, verr := range inv.Validate() {
		result.Warnings = append(result.Warnings, verr.Error())
	}
	for _, w := range result.Warnings {
		printVerbose("  Warning: %s\n", w)
	}

	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch fetchFormat {
	case "json":
		return outputJSON(writer, result)
	case "table":
		return view.RenderText(writer, view.Build(inv))
	case "html":
		return outputHTML(writer, result, client.BaseURL())
	case "xlsx":
		return view.RenderXLSX(writer, inv)
	default:
		return fmt.Errorf("unsupported output format: %s", fetchFormat)
	}
}

func outputJSON(w io.Writer, result *FetchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputHTML(w io.Writer, result *FetchResult, baseURL string) error {
	preview := view.Build(result.Invoice)
	return view.RenderHTML(w, view.Page{
		Input:       result.Number,
		Preview:     &preview,
		DownloadURL: baseURL + view.DownloadPath(result.Number),
	})
}

// FetchResult holds a looked up invoice
type FetchResult struct {
	Number   string         `json:"number"`
	Invoice  *model.Invoice `json:"invoice"`
	Warnings []string       `json:"warnings,omitempty"`
}
