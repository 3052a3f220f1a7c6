package model

import (
	"strconv"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/invoice-client/internal/decimal"
)

// Company is the issuing business printed in the invoice header
type Company struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
}

// Customer is the billed party
type Customer struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
}

// LineItem is one product row of an invoice
type LineItem struct {
	Product   string          `json:"producto"`
	Category  string          `json:"categoria"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// Subtotal returns quantity * unit price.
// The wire format carries no per-line subtotal, it is always derived here.
func (li LineItem) Subtotal() decimal.Decimal {
	return money.LineSubtotal(li.Quantity, li.UnitPrice)
}

// Invoice is the billing document returned by the lookup endpoint
type Invoice struct {
	Number    string          `json:"numero_factura"`
	IssueDate string          `json:"fecha_emision"`
	Issuer    Company         `json:"empresa"`
	Customer  Customer        `json:"cliente"`
	Items     []LineItem      `json:"detalle"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"impuesto"`
	Total     decimal.Decimal `json:"total"`
}

// ItemsSubtotal sums the recomputed line subtotals
func (inv *Invoice) ItemsSubtotal() decimal.Decimal {
	subtotals := make([]decimal.Decimal, 0, len(inv.Items))
	for _, item := range inv.Items {
		subtotals = append(subtotals, item.Subtotal())
	}
	return money.Sum(subtotals)
}

// Validate reports structural problems with a received invoice.
// Totals are authoritative and are only cross-checked, never rewritten.
func (inv *Invoice) Validate() []*ValidationError {
	var errs []*ValidationError

	if inv.Number == "" {
		errs = append(errs, NewValidationError("numero_factura", nil, "required", "missing invoice number"))
	}
	if len(inv.Items) == 0 {
		errs = append(errs, NewValidationError("detalle", nil, "min_length", "invoice has no line items"))
	}
	for i, item := range inv.Items {
		if item.Quantity <= 0 {
			errs = append(errs, NewValidationError("detalle.cantidad", item.Quantity, "gt=0",
				"line "+strconv.Itoa(i+1)+" quantity must be positive"))
		}
		if !item.UnitPrice.IsPositive() {
			errs = append(errs, NewValidationError("detalle.precio_unitario", item.UnitPrice.String(), "gt=0",
				"line "+strconv.Itoa(i+1)+" unit price must be positive"))
		}
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"subtotal", inv.Subtotal},
		{"impuesto", inv.Tax},
		{"total", inv.Total},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, NewValidationError(a.field, a.value.String(), "ge=0", "amount must not be negative"))
		}
	}

	if len(inv.Items) > 0 && !inv.Subtotal.Equal(inv.ItemsSubtotal()) {
		errs = append(errs, NewValidationError("subtotal", inv.Subtotal.String(), "sum(detalle)",
			"subtotal does not match line items ("+inv.ItemsSubtotal().String()+")"))
	}
	if !inv.Subtotal.Add(inv.Tax).Equal(inv.Total) {
		errs = append(errs, NewValidationError("total", inv.Total.String(), "subtotal+impuesto",
			"amount calculation mismatch"))
	}

	return errs
}
