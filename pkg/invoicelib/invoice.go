// Package invoicelib provides a public API for previewing invoices served by
// an invoice API and saving their PDFs.
//
// Example usage:
//
//	c := invoicelib.NewInvoiceClient(invoicelib.DefaultOptions())
//	if err := c.FetchAndRender(ctx, "FAC-2025-001"); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c.State().Preview.Total)
package invoicelib

import (
	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/model"
	"github.com/rezonia/invoice-client/internal/view"
)

// Re-export core types for public API
type (
	Invoice  = model.Invoice
	Company  = model.Company
	Customer = model.Customer
	LineItem = model.LineItem
	Preview  = view.Preview
)

// Re-export controller types
type (
	InvoiceClient = client.Client
	State         = client.State
	Notice        = client.Notice
	Severity      = client.Severity
	API           = client.API
	Saver         = client.Saver
	DirSaver      = client.DirSaver
)

// Re-export notice severities
const (
	SeveritySuccess = client.SeveritySuccess
	SeverityWarning = client.SeverityWarning
	SeverityDanger  = client.SeverityDanger
)

// Re-export error types
type (
	RequestError    = model.RequestError
	ValidationError = model.ValidationError
)

// DownloadFilename returns the file name a PDF download is saved under
func DownloadFilename(number string) string {
	return view.DownloadFilename(number)
}
