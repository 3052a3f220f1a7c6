package view

import (
	"strconv"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/invoice-client/internal/decimal"
	"github.com/rezonia/invoice-client/internal/model"
)

// Party holds the display fields of the issuer or customer block.
// Email is empty for customers.
type Party struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Row is one rendered line item
type Row struct {
	Product   string
	Category  string
	Quantity  string
	UnitPrice string
	Subtotal  string

	// SubtotalValue is quantity * unit price, recomputed on every build
	SubtotalValue decimal.Decimal
}

// Preview is the rendered form of an invoice. Every field is display text.
type Preview struct {
	Number    string
	IssueDate string
	Issuer    Party
	Customer  Party
	Rows      []Row
	Subtotal  string
	Tax       string
	Total     string
}

// Build renders an invoice into a Preview. It is a pure function of inv.
func Build(inv *model.Invoice) Preview {
	rows := make([]Row, 0, len(inv.Items))
	for _, item := range inv.Items {
		subtotal := money.LineSubtotal(item.Quantity, item.UnitPrice)
		rows = append(rows, Row{
			Product:       item.Product,
			Category:      item.Category,
			Quantity:      strconv.FormatInt(item.Quantity, 10),
			UnitPrice:     money.FormatCurrency(item.UnitPrice),
			Subtotal:      money.FormatCurrency(subtotal),
			SubtotalValue: subtotal,
		})
	}

	return Preview{
		Number:    inv.Number,
		IssueDate: inv.IssueDate,
		Issuer: Party{
			Name:    inv.Issuer.Name,
			Address: inv.Issuer.Address,
			Phone:   inv.Issuer.Phone,
			Email:   inv.Issuer.Email,
		},
		Customer: Party{
			Name:    inv.Customer.Name,
			Address: inv.Customer.Address,
			Phone:   inv.Customer.Phone,
		},
		Rows:     rows,
		Subtotal: money.FormatCurrency(inv.Subtotal),
		Tax:      money.FormatCurrency(inv.Tax),
		Total:    money.FormatCurrency(inv.Total),
	}
}
