// Package client implements the invoice preview controller: it validates the
// invoice number, looks the invoice up, renders it, downloads its PDF and
// keeps the notice and submit-control state front ends display.
//
// Front ends register with Subscribe and render from State snapshots:
//
//	c := client.New(api.NewClient(baseURL), client.DirSaver{Dir: "."})
//	c.Subscribe(func(s client.State) { redraw(s) })
//	_ = c.FetchAndRender(ctx, "FAC-2025-001")
//	_ = c.DownloadCurrentPDF(ctx)
package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/model"
	"github.com/rezonia/invoice-client/internal/view"
)

// API is the remote invoice service
type API interface {
	FetchInvoice(ctx context.Context, number string) (*model.Invoice, error)
	FetchPDF(ctx context.Context, number string) ([]byte, error)
}

// Saver stores a downloaded file and returns where it went
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// Listener receives a state snapshot after every change
type Listener func(State)

// Client is the invoice preview controller. It is safe for concurrent use;
// network calls run outside the state lock.
type Client struct {
	api    API
	saver  Saver
	clock  clockwork.Clock
	logger *zap.Logger
	ttl    time.Duration

	mu          sync.Mutex
	state       State
	noticeSeq   uint64
	noticeTimer clockwork.Timer
	listeners   []Listener
}

// Option configures the client
type Option func(*Client)

// WithClock sets the clock driving notice expiry
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for failure traces
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithNoticeTTL sets how long a notice stays up
func WithNoticeTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.ttl = ttl
	}
}

// New creates a controller in the idle state
func New(api API, saver Saver, opts ...Option) *Client {
	c := &Client{
		api:    api,
		saver:  saver,
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
		ttl:    DefaultNoticeTTL,
		state: State{
			Submit: Submit{Label: LabelIdle},
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.ttl <= 0 {
		c.ttl = DefaultNoticeTTL
	}
	return c
}

// Subscribe registers fn to be called with a snapshot after each change
func (c *Client) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// State returns a snapshot of the current state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Current returns the number of the last successfully fetched invoice
func (c *Client) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Current
}

// FetchAndRender looks up the invoice named by input and renders it.
// Blank input is rejected without a network call. On failure the previous
// preview and current invoice are left as they were.
func (c *Client) FetchAndRender(ctx context.Context, input string) error {
	number := strings.TrimSpace(input)
	if number == "" {
		c.Notify(MsgEmptyNumber, SeverityWarning)
		return model.NewValidationError("numero_factura", input, "required", "invoice number is empty")
	}

	c.SetBusy(true)
	defer c.SetBusy(false)

	inv, err := c.api.FetchInvoice(ctx, number)
	if err != nil {
		c.logger.Error("invoice lookup failed",
			zap.String("invoice_number", number),
			zap.Error(err))
		c.Notify(MsgLookupFailed, SeverityDanger)
		return err
	}

	c.update(func(s *State) {
		s.Current = number
	})
	c.RenderInvoice(inv)
	c.Notify(MsgLookupOK, SeveritySuccess)

	c.logger.Info("invoice rendered",
		zap.String("invoice_number", number),
		zap.Int("line_items", len(inv.Items)))
	return nil
}

// DownloadCurrentPDF fetches the PDF of the current invoice and saves it
// as factura_{number}.pdf. Without a current invoice it only warns.
func (c *Client) DownloadCurrentPDF(ctx context.Context) error {
	number := c.Current()
	if number == "" {
		c.Notify(MsgNothingToSave, SeverityWarning)
		return model.NewValidationError("current", nil, "required", "no invoice has been fetched")
	}

	c.SetBusy(true)
	defer c.SetBusy(false)

	data, err := c.api.FetchPDF(ctx, number)
	if err != nil {
		c.logger.Error("pdf download failed",
			zap.String("invoice_number", number),
			zap.Error(err))
		c.Notify(MsgDownloadFailed, SeverityDanger)
		return err
	}

	path, err := c.saver.Save(ctx, view.DownloadFilename(number), data)
	if err != nil {
		c.logger.Error("saving pdf failed",
			zap.String("invoice_number", number),
			zap.Error(err))
		c.Notify(MsgDownloadFailed, SeverityDanger)
		return err
	}

	c.logger.Info("pdf downloaded",
		zap.String("invoice_number", number),
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	c.update(func(s *State) {
		s.SavedPath = path
	})
	c.Notify(MsgDownloadOK, SeveritySuccess)
	return nil
}

// RenderInvoice replaces the preview with inv and reveals it
func (c *Client) RenderInvoice(inv *model.Invoice) {
	preview := view.Build(inv)
	c.update(func(s *State) {
		s.Preview = preview
		s.PreviewVisible = true
		s.PreviewRevision++
	})
}

// Notify shows message, replacing any visible notice. The notice clears
// itself after the configured TTL.
func (c *Client) Notify(message string, severity Severity) {
	c.update(func(s *State) {
		if c.noticeTimer != nil {
			c.noticeTimer.Stop()
		}

		c.noticeSeq++
		id := c.noticeSeq
		s.Notice = &Notice{
			ID:        id,
			Message:   message,
			Severity:  severity,
			ExpiresAt: c.clock.Now().Add(c.ttl),
		}
		c.noticeTimer = c.clock.AfterFunc(c.ttl, func() {
			c.expire(id)
		})
	})
}

// Dismiss hides the visible notice, if any
func (c *Client) Dismiss() {
	c.update(func(s *State) {
		if c.noticeTimer != nil {
			c.noticeTimer.Stop()
			c.noticeTimer = nil
		}
		s.Notice = nil
	})
}

// SetBusy toggles the submit control between idle and busy
func (c *Client) SetBusy(busy bool) {
	c.update(func(s *State) {
		if busy {
			s.Submit = Submit{Disabled: true, Label: LabelBusy}
		} else {
			s.Submit = Submit{Disabled: false, Label: LabelIdle}
		}
	})
}

// expire clears notice id unless a newer notice replaced it
func (c *Client) expire(id uint64) {
	c.mu.Lock()
	if c.state.Notice == nil || c.state.Notice.ID != id {
		c.mu.Unlock()
		return
	}
	c.state.Notice = nil
	c.noticeTimer = nil
	snapshot, listeners := c.state.clone(), c.listeners
	c.mu.Unlock()

	publish(listeners, snapshot)
}

// update applies fn under the lock and then notifies listeners
func (c *Client) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot, listeners := c.state.clone(), c.listeners
	c.mu.Unlock()

	publish(listeners, snapshot)
}

func publish(listeners []Listener, s State) {
	for _, fn := range listeners {
		fn(s.clone())
	}
}
