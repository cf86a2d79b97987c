package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"ragchat/client/internal/model"
)

// RefreshThreads replaces the thread view with the server's list, in server order.
// When nothing is selected yet the first thread becomes active and its messages
// are loaded.
func (c *Client) RefreshThreads(ctx context.Context) ([]model.Thread, error) {
	return c.refreshThreads(ctx, true)
}

func (c *Client) refreshThreads(ctx context.Context, autoSelect bool) ([]model.Thread, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	threads, err := c.backend.ListThreads(ctx, token)
	if err != nil {
		slog.Error("Failed to load threads", "error", err)
		c.alert("Failed to load threads", err)
		return nil, fmt.Errorf("could not load threads: %w", err)
	}

	c.mu.Lock()
	c.threads = threads
	var selectID string
	if autoSelect && c.session.ActiveThreadID == "" && len(threads) > 0 {
		selectID = threads[0].ID
	}
	c.mu.Unlock()

	if selectID != "" {
		if err := c.SelectThread(ctx, selectID); err != nil {
			return slices.Clone(threads), err
		}
	}
	return slices.Clone(threads), nil
}

// CreateThread creates a thread, refreshes the list and selects the new thread.
func (c *Client) CreateThread(ctx context.Context) (model.Thread, error) {
	token, err := c.token()
	if err != nil {
		return model.Thread{}, err
	}

	thread, err := c.backend.CreateThread(ctx, token)
	if err != nil {
		slog.Error("Failed to create thread", "error", err)
		c.alert("Failed to create new thread", err)
		return model.Thread{}, fmt.Errorf("could not create thread: %w", err)
	}
	slog.Debug("Thread created", "thread_id", thread.ID)

	if _, err := c.refreshThreads(ctx, false); err != nil {
		return *thread, err
	}
	if err := c.SelectThread(ctx, thread.ID); err != nil {
		return *thread, err
	}
	return *thread, nil
}

// SelectThread makes the thread active and loads its messages.
func (c *Client) SelectThread(ctx context.Context, threadID string) error {
	c.mu.Lock()
	c.session.ActiveThreadID = threadID
	c.messages = nil
	c.mu.Unlock()

	_, err := c.LoadMessages(ctx, threadID)
	return err
}

// LoadMessages replaces the message view with the thread's messages in server
// order. Optimistic entries still in the view are dropped.
func (c *Client) LoadMessages(ctx context.Context, threadID string) ([]model.Message, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	messages, err := c.backend.ListMessages(ctx, token, threadID)
	if err != nil {
		slog.Error("Failed to load messages", "thread_id", threadID, "error", err)
		c.alert("Failed to load messages", err)
		return nil, fmt.Errorf("could not load messages: %w", err)
	}

	c.mu.Lock()
	c.session.ActiveThreadID = threadID
	c.messages = messages
	c.mu.Unlock()
	return slices.Clone(messages), nil
}

// RenameThread shows the new title right away and then asks the server to store
// it. A blank title is ignored. When the server refuses, the local title is kept
// until the next refresh.
func (c *Client) RenameThread(ctx context.Context, threadID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	token, err := c.token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.threads {
		if c.threads[i].ID == threadID {
			c.threads[i].Title = title
		}
	}
	c.mu.Unlock()

	if err := c.backend.RenameThread(ctx, token, threadID, title); err != nil {
		slog.Error("Failed to rename thread", "thread_id", threadID, "error", err)
		c.alert("Failed to rename thread", err)
		return fmt.Errorf("could not rename thread: %w", err)
	}

	_, err = c.RefreshThreads(ctx)
	return err
}

// DeleteThread deletes a thread after the user confirms. It reports whether the
// thread was deleted. Deleting the active thread clears the selection, and no
// other thread is selected in its place.
func (c *Client) DeleteThread(ctx context.Context, threadID string) (bool, error) {
	token, err := c.token()
	if err != nil {
		return false, err
	}
	if !c.confirm("Are you sure you want to delete this thread?") {
		return false, nil
	}

	if err := c.backend.DeleteThread(ctx, token, threadID); err != nil {
		slog.Error("Failed to delete thread", "thread_id", threadID, "error", err)
		c.alert("Failed to delete thread", err)
		return false, fmt.Errorf("could not delete thread: %w", err)
	}
	slog.Debug("Thread deleted", "thread_id", threadID)

	c.mu.Lock()
	if c.session.ActiveThreadID == threadID {
		c.session.ActiveThreadID = ""
		c.messages = nil
	}
	c.mu.Unlock()

	_, err = c.refreshThreads(ctx, false)
	return true, err
}
