package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-client/internal/pdf"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about downloaded PDFs",
	Long: `Display information about downloaded invoice PDFs.

Shows:
  - File size and modification time
  - PDF version and page count
  - Title and producer, when set

Directories are searched for factura_*.pdf files.

Examples:
  invoice-client info factura_1001.pdf
  invoice-client info invoices/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	for _, file := range files {
		printFileInfo(file)
		fmt.Println()
	}

	return nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				files = append(files, match)
				continue
			}

			found, err := filepath.Glob(filepath.Join(match, "factura_*.pdf"))
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}

	return files, nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	doc, err := pdf.Inspect(data)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Version: PDF %s\n", doc.Version)
	fmt.Printf("  Pages: %d\n", doc.Pages)
	if title := strings.TrimSpace(doc.Title); title != "" {
		fmt.Printf("  Title: %s\n", title)
	}
	if producer := strings.TrimSpace(doc.Producer); producer != "" {
		fmt.Printf("  Producer: %s\n", producer)
	}
}
