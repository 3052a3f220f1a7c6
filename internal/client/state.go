package client

import (
	"time"

	"github.com/rezonia/invoice-client/internal/view"
)

// Severity is the visual weight of a notice
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Submit control labels
const (
	LabelIdle = "Generate Invoice"
	LabelBusy = "Generating…"
)

// User-facing messages. They never carry error detail.
const (
	MsgEmptyNumber    = "Please enter an invoice number"
	MsgLookupOK       = "Invoice generated successfully"
	MsgLookupFailed   = "Error generating the invoice. Please try again."
	MsgNothingToSave  = "No invoice to download"
	MsgDownloadOK     = "PDF downloaded successfully"
	MsgDownloadFailed = "Error downloading the PDF. Please try again."
)

// DefaultNoticeTTL is how long a notice stays up
const DefaultNoticeTTL = 5 * time.Second

// Notice is the single transient notification
type Notice struct {
	ID        uint64
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

// Submit is the state of the submit control
type Submit struct {
	Disabled bool
	Label    string
}

// State is a snapshot of everything a front end displays
type State struct {
	// Current is the number of the last successfully fetched invoice
	Current string
	Submit  Submit
	Notice  *Notice

	PreviewVisible bool
	Preview        view.Preview
	// PreviewRevision increases on every render; front ends scroll the
	// preview into view when it changes.
	PreviewRevision uint64

	// SavedPath is where the last successful download was written
	SavedPath string
}

func (s State) clone() State {
	out := s
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	if s.Preview.Rows != nil {
		out.Preview.Rows = append([]view.Row(nil), s.Preview.Rows...)
	}
	return out
}

// Page maps the state onto the HTML page model
func (s State) Page() view.Page {
	page := view.Page{
		Input:          s.Current,
		SubmitLabel:    s.Submit.Label,
		SubmitDisabled: s.Submit.Disabled,
	}
	if s.Notice != nil {
		page.Alert = &view.Alert{
			Message:  s.Notice.Message,
			Severity: string(s.Notice.Severity),
		}
	}
	if s.PreviewVisible {
		preview := s.Preview
		page.Preview = &preview
		page.DownloadURL = view.DownloadPath(s.Current)
	}
	return page
}
