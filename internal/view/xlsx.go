package view

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	money "github.com/rezonia/invoice-client/internal/decimal"
	"github.com/rezonia/invoice-client/internal/model"
)

// XLSXContentType is the media type of RenderXLSX output
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const xlsxSheet = "Factura"

// XLSXFilename returns the spreadsheet file name for an invoice
func XLSXFilename(number string) string {
	return "factura_" + number + ".xlsx"
}

// RenderXLSX writes inv as a one-sheet workbook: header block, line items
// with recomputed subtotals, then the invoice totals. Amounts are numeric
// cells.
func RenderXLSX(w io.Writer, inv *model.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw := &sheetWriter{f: f, sheet: xlsxSheet}

	header := [][2]string{
		{"Invoice", inv.Number},
		{"Issued", inv.IssueDate},
		{"Issuer", inv.Issuer.Name},
		{"Customer", inv.Customer.Name},
	}
	for i, kv := range header {
		sw.row(fmt.Sprintf("A%d", i+1), kv[0], kv[1])
	}

	tableRow := len(header) + 2
	sw.row(fmt.Sprintf("A%d", tableRow), "Product", "Category", "Quantity", "Unit price", "Subtotal")
	if sw.err != nil {
		return sw.err
	}
	if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("E%d", tableRow), bold); err != nil {
		return err
	}

	row := tableRow
	for _, item := range inv.Items {
		row++
		sw.row(fmt.Sprintf("A%d", row),
			item.Product,
			item.Category,
			item.Quantity,
			item.UnitPrice.InexactFloat64(),
			money.LineSubtotal(item.Quantity, item.UnitPrice).InexactFloat64())
	}

	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", inv.Subtotal.InexactFloat64()},
		{"Tax", inv.Tax.InexactFloat64()},
		{"Total", inv.Total.InexactFloat64()},
	}
	row++
	for _, t := range totals {
		row++
		sw.row(fmt.Sprintf("D%d", row), t.label, t.value)
	}
	if sw.err != nil {
		return sw.err
	}

	if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("D%d", tableRow+1), fmt.Sprintf("E%d", row), amount); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "D", "E", 16); err != nil {
		return err
	}

	return f.Write(w)
}

// sheetWriter writes rows and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) row(cell string, values ...interface{}) {
	if w.err != nil {
		return
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("write row %s: %w", cell, err)
	}
}
