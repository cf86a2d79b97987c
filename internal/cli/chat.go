package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ragchat/client/internal/model"
)

var promptColor = color.New(color.FgHiBlue)

const lineChatHelp = `Commands:
  /threads         list threads
  /new             start a new thread
  /switch ID       switch to another thread
  /rename TITLE    rename the current thread
  /delete          delete the current thread
  /quit            leave the chat`

func newChatCmd(deps Deps) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "chat [THREAD_ID]",
		Short: "Chat interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := deps.Client.RefreshThreads(ctx); err != nil {
				return err
			}
			if len(args) == 1 {
				if err := deps.Client.SelectThread(ctx, args[0]); err != nil {
					return err
				}
			}
			if deps.Client.ActiveThreadID() == "" {
				if _, err := deps.Client.CreateThread(ctx); err != nil {
					return err
				}
			}

			if !plain && deps.RunTUI != nil {
				return deps.RunTUI(ctx)
			}
			return runLineChat(ctx, cmd, deps)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use the line-mode chat instead of the full-screen one")
	return cmd
}

// lineChatConfig sets up the prompt. History stays in memory: messages are never
// written to disk.
func lineChatConfig(cmd *cobra.Command) *readline.Config {
	return &readline.Config{
		Prompt:            promptColor.Sprint("> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "/quit",
		HistorySearchFold: true,
		Stdin:             io.NopCloser(cmd.InOrStdin()),
		Stdout:            cmd.OutOrStdout(),
		Stderr:            cmd.ErrOrStderr(),
	}
}

// runLineChat reads messages from a readline prompt until /quit or EOF.
func runLineChat(ctx context.Context, cmd *cobra.Command, deps Deps) error {
	rl, err := readline.NewEx(lineChatConfig(cmd))
	if err != nil {
		return err
	}
	defer rl.Close()

	p := newPrinter(cmd)
	printHeader(p, deps)
	p.Info("Type a message, or /help for commands.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := runLineCommand(ctx, p, deps, line); quit {
				return nil
			}
			continue
		}

		if deps.Client.ActiveThreadID() == "" {
			p.Info("No thread selected. Use /new or /switch first.")
			continue
		}
		before := len(deps.Client.Messages())
		deps.Client.SetDraft(line)
		if err := <-deps.Client.SubmitDraft(ctx); err != nil {
			continue
		}
		messages := deps.Client.Messages()
		for _, m := range messages[min(before, len(messages)):] {
			if m.Role == model.MessageRoleAssistant {
				p.Message(m, deps.Renderer)
			}
		}
	}
}

// runLineCommand handles a slash command and reports whether the chat should end.
// Failures have already been shown through the prompter.
func runLineCommand(ctx context.Context, p *printer, deps Deps, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		p.Line(lineChatHelp)
	case "/threads":
		threads, err := deps.Client.RefreshThreads(ctx)
		if err != nil {
			return false
		}
		active := deps.Client.ActiveThreadID()
		for _, t := range threads {
			p.Thread(t, t.ID == active)
		}
	case "/new":
		if _, err := deps.Client.CreateThread(ctx); err == nil {
			printHeader(p, deps)
		}
	case "/switch":
		if arg == "" {
			p.Info("Usage: /switch THREAD_ID")
			return false
		}
		if err := deps.Client.SelectThread(ctx, arg); err != nil {
			return false
		}
		printHeader(p, deps)
		for _, m := range deps.Client.Messages() {
			p.Message(m, deps.Renderer)
		}
	case "/rename":
		active := deps.Client.ActiveThreadID()
		if active == "" || arg == "" {
			p.Info("Usage: /rename TITLE")
			return false
		}
		if err := deps.Client.RenameThread(ctx, active, arg); err == nil {
			printHeader(p, deps)
		}
	case "/delete":
		active := deps.Client.ActiveThreadID()
		if active == "" {
			p.Info("No thread selected.")
			return false
		}
		deleted, err := deps.Client.DeleteThread(ctx, active)
		if err != nil {
			return false
		}
		cancelled(p, deleted)
		if deleted {
			p.Info("Thread deleted. Use /new or /switch to continue.")
		}
	default:
		p.Info("Unknown command %s, try /help.", name)
	}
	return false
}

func printHeader(p *printer, deps Deps) {
	thread, ok := deps.Client.ActiveThread()
	if !ok {
		p.Separator()
		return
	}
	p.Title(thread.HeaderTitle())
}
