package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("page.html.tmpl").Funcs(template.FuncMap{
	"seconds":  func(d time.Duration) string { return fmt.Sprintf("%.0fs", d.Seconds()) },
	"filename": DownloadFilename,
}).ParseFS(templateFS, "templates/page.html.tmpl"))

// DefaultAlertExpiry is used when an Alert carries no expiry
const DefaultAlertExpiry = 5 * time.Second

// Alert is the single notification shown above the form
type Alert struct {
	Message  string
	Severity string
	// Expiry is how long the alert stays visible
	Expiry time.Duration
}

// Page is everything the HTML page shows
type Page struct {
	Title          string
	Input          string
	SubmitLabel    string
	SubmitDisabled bool
	Alert          *Alert
	// Preview is nil while no invoice has been rendered
	Preview     *Preview
	DownloadURL string
}

// DownloadFilename is the file name a PDF for number is saved under
func DownloadFilename(number string) string {
	return "factura_" + number + ".pdf"
}

// DownloadPath is the same-origin PDF URL for number
func DownloadPath(number string) string {
	return "/api/generar-pdf/" + url.PathEscape(number)
}

// RenderHTML writes the page. Output depends only on p.
func RenderHTML(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Invoice Generator"
	}
	if p.Alert != nil && p.Alert.Expiry <= 0 {
		alert := *p.Alert
		alert.Expiry = DefaultAlertExpiry
		p.Alert = &alert
	}
	return pageTmpl.Execute(w, p)
}
