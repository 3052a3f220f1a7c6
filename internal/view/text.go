package view

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderText writes a plain-text rendition of p, one block per section
func RenderText(w io.Writer, p Preview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "INVOICE\t%s\n", p.Number)
	fmt.Fprintf(tw, "ISSUED\t%s\n", p.IssueDate)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "ISSUER\t%s\n", p.Issuer.Name)
	fmt.Fprintf(tw, "\t%s\n", p.Issuer.Address)
	fmt.Fprintf(tw, "\t%s\n", p.Issuer.Phone)
	fmt.Fprintf(tw, "\t%s\n", p.Issuer.Email)
	fmt.Fprintf(tw, "CUSTOMER\t%s\n", p.Customer.Name)
	fmt.Fprintf(tw, "\t%s\n", p.Customer.Address)
	fmt.Fprintf(tw, "\t%s\n", p.Customer.Phone)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PRODUCT\tCATEGORY\tQTY\tUNIT PRICE\tSUBTOTAL\t")
	for _, r := range p.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Product, r.Category, r.Quantity, r.UnitPrice, r.Subtotal)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "\t\t\tSubtotal\t%s\t\n", p.Subtotal)
	fmt.Fprintf(tw, "\t\t\tTax\t%s\t\n", p.Tax)
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\t\n", p.Total)
	return tw.Flush()
}
