package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ragchat/client/internal/markdown"
	"ragchat/client/internal/model"
)

const helpText = "enter send · ctrl+n new · tab switch · ctrl+r rename · ctrl+d delete · ctrl+c quit"

// View renders the screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Width(m.width).Render(m.headerTitle())
	sidebar := sidebarStyle.Height(m.viewport.Height).Render(m.renderThreads())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())
	input := inputStyle.Width(max(m.width-2, minMainWidth)).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, m.statusLine())
}

func (m *Model) headerTitle() string {
	title := "No thread selected"
	if thread, ok := m.client.ActiveThread(); ok {
		title = thread.HeaderTitle()
	}
	if sess := m.client.Session(); sess.User != nil {
		return title + "  ·  " + sess.User.Email
	}
	return title
}

func (m *Model) renderThreads() string {
	threads := m.client.Threads()
	if len(threads) == 0 {
		return threadStyle.Render("No threads")
	}
	active := m.client.ActiveThreadID()
	lines := make([]string, 0, len(threads))
	for _, t := range threads {
		title := truncate(t.DisplayTitle(), sidebarWidth-3)
		if t.ID == active {
			lines = append(lines, activeThreadStyle.Render("▸ "+title))
		} else {
			lines = append(lines, threadStyle.Render("  "+title))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMessages() string {
	if m.client.ActiveThreadID() == "" {
		return threadStyle.Render("Select a thread with tab or start one with ctrl+n.")
	}
	messages := m.client.Messages()
	if len(messages) == 0 {
		return threadStyle.Render("No messages yet.")
	}

	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) renderMessage(msg model.Message) string {
	if msg.Role != model.MessageRoleAssistant {
		return userLabelStyle.Render("You") + "\n" + msg.Content
	}
	out := assistantLabelStyle.Render("Assistant") + "\n" + m.renderer.Render(msg.Content)
	if sources := markdown.Sources(msg.RetrievalRefs); sources != "" {
		out += "\n" + sourcesStyle.Render(sources)
	}
	return out
}

func (m *Model) statusLine() string {
	switch {
	case m.confirm != nil:
		return confirmStyle.Render(m.confirm.question + " (y/n)")
	case m.alert != "":
		return alertStyle.Render(m.alert)
	case m.sending > 0 || m.busy:
		return m.spinner.View() + statusStyle.Render(" Waiting for the server...")
	case m.status != "":
		return statusStyle.Render(m.status)
	default:
		return statusStyle.Render(helpText)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
