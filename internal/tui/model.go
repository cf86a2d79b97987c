// Package tui is the full-screen chat front end. It renders snapshots of the
// service.Client state and turns key presses into client commands.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ragchat/client/internal/markdown"
	"ragchat/client/internal/service"
)

type inputMode int

const (
	modeChat inputMode = iota
	modeRename
)

// opDoneMsg reports the end of a client command. The views are re-read from the
// client whenever one arrives.
type opDoneMsg struct {
	err error
}

// sendDoneMsg reports the end of a send.
type sendDoneMsg struct {
	err error
}

// alertMsg carries a failure to show in the status line.
type alertMsg struct {
	text string
}

// confirmMsg asks a yes/no question. The answer goes to reply.
type confirmMsg struct {
	question string
	reply    chan<- bool
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx      context.Context
	client   *service.Client
	renderer *markdown.Renderer

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width   int
	height  int
	ready   bool
	mode    inputMode
	sending int
	busy    bool
	status  string
	alert   string
	confirm *confirmMsg
}

// New creates the chat model. The client must be logged in.
func New(ctx context.Context, client *service.Client, renderer *markdown.Renderer) *Model {
	in := textinput.New()
	in.Placeholder = "Ask something about your documents..."
	in.Prompt = "> "
	in.CharLimit = 0
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:      ctx,
		client:   client,
		renderer: renderer,
		input:    in,
		viewport: viewport.New(minMainWidth, minViewportRow),
		spinner:  sp,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// run executes a client command off the update loop.
func (m *Model) run(fn func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: fn(ctx)}
	}
}

// waitForSend turns the send result channel into a message.
func waitForSend(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{err: <-done}
	}
}
