package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true
		m.refreshViewport()
		return m, nil

	case confirmMsg:
		m.confirm = &msg
		return m, nil

	case alertMsg:
		m.alert = msg.text
		return m, nil

	case opDoneMsg:
		m.busy = false
		if msg.err == nil {
			m.alert = ""
		}
		m.refreshViewport()
		return m, nil

	case sendDoneMsg:
		if m.sending > 0 {
			m.sending--
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y":
			m.answer(true)
		case "n", "N", "esc", "enter":
			m.answer(false)
		case "ctrl+c":
			m.answer(false)
			return m, tea.Quit
		}
		return m, nil
	}

	client := m.client
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.mode == modeRename {
			m.leaveRename()
		}
		return m, nil

	case "enter":
		if m.mode == modeRename {
			id, title := client.ActiveThreadID(), m.input.Value()
			m.leaveRename()
			return m, m.run(func(ctx context.Context) error {
				return client.RenameThread(ctx, id, title)
			})
		}
		return m, m.send()

	case "ctrl+n":
		m.status = ""
		return m, m.run(func(ctx context.Context) error {
			_, err := client.CreateThread(ctx)
			return err
		})

	case "ctrl+l":
		return m, m.run(func(ctx context.Context) error {
			_, err := client.RefreshThreads(ctx)
			return err
		})

	case "ctrl+r":
		thread, ok := client.ActiveThread()
		if !ok {
			m.status = "No thread selected."
			return m, nil
		}
		m.mode = modeRename
		m.input.Prompt = "Rename: "
		m.input.SetValue(thread.Title)
		m.input.CursorEnd()
		return m, nil

	case "ctrl+d":
		id := client.ActiveThreadID()
		if id == "" {
			m.status = "No thread selected."
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := client.DeleteThread(ctx, id)
			return err
		})

	case "tab":
		return m, m.switchThread(1)

	case "shift+tab":
		return m, m.switchThread(-1)

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send submits the input as a message to the active thread.
func (m *Model) send() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if m.client.ActiveThreadID() == "" {
		m.status = "No thread selected. Press ctrl+n to start one."
		return nil
	}

	m.client.SetDraft(text)
	done := m.client.SubmitDraft(m.ctx)
	m.input.Reset()
	m.sending++
	m.alert = ""
	m.status = ""
	m.refreshViewport()
	return waitForSend(done)
}

// switchThread selects the thread delta positions away from the active one.
func (m *Model) switchThread(delta int) tea.Cmd {
	threads := m.client.Threads()
	if len(threads) == 0 {
		return nil
	}
	active := m.client.ActiveThreadID()
	i := 0
	for j, t := range threads {
		if t.ID == active {
			i = (j + delta + len(threads)) % len(threads)
			break
		}
	}
	client, id := m.client, threads[i].ID
	return m.run(func(ctx context.Context) error {
		return client.SelectThread(ctx, id)
	})
}

func (m *Model) answer(yes bool) {
	m.confirm.reply <- yes
	m.confirm = nil
}

func (m *Model) leaveRename() {
	m.mode = modeChat
	m.input.Prompt = "> "
	m.input.Reset()
}

// layout sizes the components for the current window.
func (m *Model) layout() {
	mainWidth := max(m.width-sidebarWidth-1, minMainWidth)
	m.viewport.Width = mainWidth
	m.viewport.Height = max(m.height-headerHeight-inputHeight-statusHeight, minViewportRow)
	m.input.Width = max(m.width-6, minMainWidth)
	if err := m.renderer.SetWidth(mainWidth - 2); err != nil {
		m.alert = err.Error()
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
