package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"ragchat/client/internal/interfaces"
	"ragchat/client/internal/markdown"
	"ragchat/client/internal/service"
)

// programPrompter routes the client's prompts into the running program.
type programPrompter struct {
	program *tea.Program
	done    <-chan struct{}
}

func (p *programPrompter) Alert(message string) {
	p.program.Send(alertMsg{text: message})
}

// Confirm blocks until the user answers in the status line or the program exits.
func (p *programPrompter) Confirm(message string) bool {
	reply := make(chan bool, 1)
	p.program.Send(confirmMsg{question: message, reply: reply})
	select {
	case yes := <-reply:
		return yes
	case <-p.done:
		return false
	}
}

// Run shows the chat screen until the user quits. The client's prompter is
// replaced while the screen is up and set to fallback afterwards.
func Run(ctx context.Context, client *service.Client, renderer *markdown.Renderer, fallback interfaces.Prompter) error {
	m := New(ctx, client, renderer)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan struct{})
	client.SetPrompter(&programPrompter{program: program, done: done})
	defer func() {
		close(done)
		client.SetPrompter(fallback)
	}()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("chat screen failed: %w", err)
	}
	return nil
}
