package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/interfaces"
	"ragchat/client/internal/model"
	"ragchat/client/internal/repository"
)

// Client is the session controller. It owns the session, the thread view, the
// message view, the composer draft and the admin view, and keeps them in step with
// the backend. UI adapters call its methods in response to user commands and render
// its snapshots.
//
// All state is guarded by mu. Backend calls and prompts happen with mu released.
type Client struct {
	backend interfaces.Backend
	state   repository.StateRepository

	mu        sync.Mutex
	prompter  interfaces.Prompter
	session   model.Session
	threads   []model.Thread
	messages  []model.Message
	draft     string
	users     []model.User
	documents []model.Document

	pending sync.WaitGroup
}

// NewClient creates an unauthenticated controller. A nil prompter declines every
// confirmation and only logs alerts.
func NewClient(backend interfaces.Backend, state repository.StateRepository, prompter interfaces.Prompter) *Client {
	if prompter == nil {
		prompter = logPrompter{}
	}
	return &Client{backend: backend, state: state, prompter: prompter}
}

// SetPrompter replaces the prompter. Front ends that only know how to talk to the
// user after startup (the TUI) install theirs here.
func (c *Client) SetPrompter(p interfaces.Prompter) {
	if p == nil {
		p = logPrompter{}
	}
	c.mu.Lock()
	c.prompter = p
	c.mu.Unlock()
}

// Session returns a copy of the current session.
func (c *Client) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked()
}

func (c *Client) sessionLocked() model.Session {
	s := c.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Threads returns the thread view in server order.
func (c *Client) Threads() []model.Thread {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.threads)
}

// Messages returns the message view of the active thread, optimistic entries included.
func (c *Client) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// ActiveThreadID returns the selected thread, or "" when none is selected.
func (c *Client) ActiveThreadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ActiveThreadID
}

// ActiveThread returns the selected thread as it appears in the thread view.
func (c *Client) ActiveThread() (model.Thread, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.session.ActiveThreadID
	if id == "" {
		return model.Thread{}, false
	}
	for _, t := range c.threads {
		if t.ID == id {
			return t, true
		}
	}
	return model.Thread{ID: id}, true
}

// SetDraft stores the composer input.
func (c *Client) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

// Draft returns the composer input.
func (c *Client) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Wait blocks until every pending send has reconciled or failed.
func (c *Client) Wait() {
	c.pending.Wait()
}

// token returns the bearer token, or ErrAuth when nobody is logged in.
func (c *Client) token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Token == "" {
		return "", fmt.Errorf("%w: not logged in", app_errors.ErrAuth)
	}
	return c.session.Token, nil
}

func (c *Client) prompt() interfaces.Prompter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompter
}

// alert shows "<prefix>: <reason>" to the user.
func (c *Client) alert(prefix string, err error) {
	c.prompt().Alert(prefix + ": " + app_errors.Reason(err))
}

func (c *Client) confirm(message string) bool {
	return c.prompt().Confirm(message)
}

// resetLocked drops every view and the session.
func (c *Client) resetLocked() {
	c.session = model.Session{}
	c.threads = nil
	c.messages = nil
	c.draft = ""
	c.users = nil
	c.documents = nil
}

type logPrompter struct{}

func (logPrompter) Confirm(message string) bool {
	slog.Warn("Confirmation declined, no prompter installed", "question", message)
	return false
}

func (logPrompter) Alert(message string) {
	slog.Warn("Alert", "message", message)
}
