package tui_test

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/tui"
	"github.com/rezonia/invoice-client/internal/view"
)

type fakeController struct {
	mu        sync.Mutex
	state     client.State
	inputs    []string
	downloads int
	dismissed int
}

func newFakeController() *fakeController {
	return &fakeController{state: client.State{Submit: client.Submit{Label: client.LabelIdle}}}
}

func (f *fakeController) FetchAndRender(_ context.Context, input string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	f.state.PreviewRevision++
	f.state.PreviewVisible = true
	f.state.Current = input
	f.state.Preview = view.Preview{Number: input, Total: "$119"}
	f.state.Notice = &client.Notice{ID: 1, Message: client.MsgLookupOK, Severity: client.SeveritySuccess}
	return nil
}

func (f *fakeController) DownloadCurrentPDF(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	return nil
}

func (f *fakeController) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
	f.state.Notice = nil
}

func (f *fakeController) State() client.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// runCmd executes cmd and feeds its message back into m
func runCmd(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestModel_SubmitFetches(t *testing.T) {
	ctrl := newFakeController()
	var m tea.Model = tui.New(context.Background(), ctrl)

	m = typeText(t, m, "1001")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.(*tui.Model).Busy())

	m = runCmd(t, m, cmd)
	assert.Equal(t, []string{"1001"}, ctrl.inputs)
	assert.False(t, m.(*tui.Model).Busy())

	out := m.View()
	assert.Contains(t, out, client.MsgLookupOK)
	assert.Contains(t, out, "$119")
	assert.Contains(t, out, "factura_1001.pdf")
}

func TestModel_SubmitIgnoredWhileBusy(t *testing.T) {
	ctrl := newFakeController()
	var m tea.Model = tui.New(context.Background(), ctrl)

	m, _ = m.Update(tui.StateMsg{State: client.State{
		Submit: client.Submit{Disabled: true, Label: client.LabelBusy},
	}})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Nil(t, cmd)

	assert.Empty(t, ctrl.inputs)
	assert.Zero(t, ctrl.downloads)
	assert.Contains(t, m.View(), client.LabelBusy)
}

func TestModel_SecondSubmitBeforeDone(t *testing.T) {
	ctrl := newFakeController()
	var m tea.Model = tui.New(context.Background(), ctrl)

	m, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)
}

func TestModel_Download(t *testing.T) {
	ctrl := newFakeController()
	var m tea.Model = tui.New(context.Background(), ctrl)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	runCmd(t, m, cmd)
	assert.Equal(t, 1, ctrl.downloads)
}

func TestModel_Dismiss(t *testing.T) {
	ctrl := newFakeController()
	ctrl.state.Notice = &client.Notice{Message: "hello", Severity: client.SeverityWarning}
	var m tea.Model = tui.New(context.Background(), ctrl)
	assert.Contains(t, m.View(), "hello")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, ctrl.dismissed)
	assert.NotContains(t, m.View(), "hello")
}

func TestModel_Quit(t *testing.T) {
	var m tea.Model = tui.New(context.Background(), newFakeController())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EmptyPreview(t *testing.T) {
	var m tea.Model = tui.New(context.Background(), newFakeController())

	out := m.View()
	assert.Contains(t, out, "No invoice loaded")
	assert.Contains(t, out, client.LabelIdle)
}

func TestModel_StateMsgRendersPreview(t *testing.T) {
	var m tea.Model = tui.New(context.Background(), newFakeController())

	m, _ = m.Update(tui.StateMsg{State: client.State{
		Current:         "7",
		Submit:          client.Submit{Label: client.LabelIdle},
		PreviewVisible:  true,
		PreviewRevision: 1,
		Preview:         view.Preview{Number: "7", Total: "$2.500"},
	}})

	out := m.View()
	assert.Contains(t, out, "$2.500")
	assert.NotContains(t, out, "No invoice loaded")
}
