package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"ragchat/client/internal/model"
)

// Send posts a user message to the active thread. The message is appended to the
// view and the draft cleared before the request goes out; the returned channel
// yields the request error, if any, and is closed once the reply has been applied.
//
// Blank text or a thread that is not the active one makes Send a no-op: nothing is
// requested, the views and the draft are untouched, and the channel is already
// closed.
//
// A failed send leaves the optimistic message in the view as it is.
func (c *Client) Send(ctx context.Context, threadID, text string) <-chan error {
	done := make(chan error, 1)
	text = strings.TrimSpace(text)

	c.mu.Lock()
	token := c.session.Token
	if text == "" || threadID == "" || token == "" || threadID != c.session.ActiveThreadID {
		c.mu.Unlock()
		close(done)
		return done
	}
	optimistic := model.Message{
		ThreadID:  threadID,
		Role:      model.MessageRoleUser,
		Content:   text,
		CreatedAt: model.Now(),
		ClientID:  uuid.NewString(),
	}
	c.messages = append(c.messages, optimistic)
	c.draft = ""
	c.pending.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.pending.Done()
		defer close(done)

		resp, err := c.backend.SendMessage(ctx, token, threadID, text)
		if err != nil {
			slog.Error("Failed to send message", "thread_id", threadID, "error", err)
			c.alert("Failed to send message", err)
			done <- fmt.Errorf("could not send message: %w", err)
			return
		}
		c.reconcile(optimistic, resp)
	}()
	return done
}

// SubmitDraft sends the current draft to the active thread.
func (c *Client) SubmitDraft(ctx context.Context) <-chan error {
	c.mu.Lock()
	threadID, text := c.session.ActiveThreadID, c.draft
	c.mu.Unlock()
	return c.Send(ctx, threadID, text)
}

// reconcile swaps the optimistic message for the confirmed one and appends the
// assistant reply. If the view was reloaded in the meantime the reply is dropped.
func (c *Client) reconcile(optimistic model.Message, resp *model.ChatResponse) {
	now := model.Now()
	confirmed := model.Message{
		ThreadID:  optimistic.ThreadID,
		Role:      model.MessageRoleUser,
		Content:   optimistic.Content,
		CreatedAt: now,
	}
	if resp.UserMessage != nil {
		confirmed = *resp.UserMessage
		confirmed.ClientID = ""
	}
	reply := model.Message{
		ThreadID:      optimistic.ThreadID,
		Role:          model.MessageRoleAssistant,
		Content:       resp.Message,
		CreatedAt:     now,
		RetrievalRefs: resp.RetrievalRefs,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.messages, func(m model.Message) bool {
		return m.ClientID == optimistic.ClientID
	})
	if i < 0 {
		slog.Debug("Optimistic message left the view, dropping reply", "thread_id", optimistic.ThreadID)
		return
	}
	c.messages[i] = confirmed
	c.messages = append(c.messages, reply)
}

// DeleteMessage deletes a stored message and reloads the active thread.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	token, err := c.token()
	if err != nil {
		return err
	}
	if err := c.backend.DeleteMessage(ctx, token, messageID); err != nil {
		slog.Error("Failed to delete message", "message_id", messageID, "error", err)
		c.alert("Failed to delete message", err)
		return fmt.Errorf("could not delete message: %w", err)
	}

	if active := c.ActiveThreadID(); active != "" {
		_, err = c.LoadMessages(ctx, active)
		return err
	}
	return nil
}

// MessageCount returns how many messages the server holds for the thread.
func (c *Client) MessageCount(ctx context.Context, threadID string) (int, error) {
	token, err := c.token()
	if err != nil {
		return 0, err
	}
	n, err := c.backend.CountMessages(ctx, token, threadID)
	if err != nil {
		return 0, fmt.Errorf("could not count messages: %w", err)
	}
	return n, nil
}
