// Package tui is the terminal front end of the invoice client
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/view"
)

// chromeHeight is the number of lines around the preview viewport
const chromeHeight = 9

// Controller is the part of client.Client the screen drives
type Controller interface {
	FetchAndRender(ctx context.Context, input string) error
	DownloadCurrentPDF(ctx context.Context) error
	Dismiss()
	State() client.State
}

// StateMsg carries a controller snapshot into the program
type StateMsg struct {
	State client.State
}

// opDoneMsg signals a controller operation returned
type opDoneMsg struct {
	err error
}

// Model is the invoice screen
type Model struct {
	ctx      context.Context
	ctrl     Controller
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model

	state    client.State
	revision uint64
	running  bool
}

// New creates the screen for ctrl
func New(ctx context.Context, ctrl Controller) *Model {
	input := textinput.New()
	input.Placeholder = "Invoice number"
	input.Prompt = "Invoice # "
	input.CharLimit = 64
	input.Width = 32
	input.Focus()

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		keys:     DefaultKeyMap,
		help:     help.New(),
		input:    input,
		viewport: viewport.New(80, 20),
		state:    ctrl.State(),
	}
	m.viewport.SetContent(renderPreview(m.state))
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Busy reports whether the submit control is disabled
func (m *Model) Busy() bool {
	return m.running || m.state.Submit.Disabled
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.help.Width = msg.Width
		return m, nil

	case StateMsg:
		m.apply(msg.State)
		return m, nil

	case opDoneMsg:
		m.running = false
		m.apply(m.ctrl.State())
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.Busy() {
			return m, nil
		}
		m.running = true
		input := m.input.Value()
		return m, m.run(func(ctx context.Context) error {
			return m.ctrl.FetchAndRender(ctx, input)
		})

	case key.Matches(msg, m.keys.Download):
		if m.Busy() {
			return m, nil
		}
		m.running = true
		return m, m.run(m.ctrl.DownloadCurrentPDF)

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.Dismiss()
		m.apply(m.ctrl.State())
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) run(op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

// apply takes a new snapshot and scrolls a freshly rendered preview to the top
func (m *Model) apply(s client.State) {
	m.state = s
	if s.PreviewRevision != m.revision {
		m.revision = s.PreviewRevision
		m.viewport.SetContent(renderPreview(s))
		m.viewport.GotoTop()
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Invoice Generator") + "\n\n")

	button := buttonStyle.Render(m.state.Submit.Label)
	if m.Busy() {
		button = disabledButtonStyle.Render(m.state.Submit.Label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button) + "\n\n")

	if n := m.state.Notice; n != nil {
		b.WriteString(noticeStyle(n.Severity).Render(n.Message))
	}
	b.WriteString("\n\n")

	b.WriteString(previewStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.help())))
	return b.String()
}

func renderPreview(s client.State) string {
	if !s.PreviewVisible {
		return subtitleStyle.Render("No invoice loaded. Type a number and press enter.")
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render("ctrl+d saves "+view.DownloadFilename(s.Current)) + "\n\n")
	if err := view.RenderText(&b, s.Preview); err != nil {
		return err.Error()
	}
	return b.String()
}

// Run starts the screen for c and blocks until the user quits
func Run(ctx context.Context, c *client.Client, opts ...tea.ProgramOption) error {
	m := New(ctx, c)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	c.Subscribe(func(s client.State) {
		p.Send(StateMsg{State: s})
	})

	_, err := p.Run()
	return err
}
