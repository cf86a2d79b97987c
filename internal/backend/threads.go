package backend

import (
	"context"
	"net/http"

	"ragchat/client/internal/model"
)

// ListThreads returns the caller's threads in server order.
func (c *Client) ListThreads(ctx context.Context, token string) ([]model.Thread, error) {
	threads := []model.Thread{}
	if err := c.doJSON(ctx, http.MethodGet, "/threads", token, nil, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// CreateThread creates an untitled thread; the server picks the title.
func (c *Client) CreateThread(ctx context.Context, token string) (*model.Thread, error) {
	var thread model.Thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", token, struct{}{}, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// RenameThread sets a thread's title.
func (c *Client) RenameThread(ctx context.Context, token, threadID, title string) error {
	req := &RenameThreadRequest{Title: title}
	if err := validateRequest(req); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPatch, "/threads/"+escape(threadID), token, req, nil)
}

// DeleteThread deletes a thread and its messages.
func (c *Client) DeleteThread(ctx context.Context, token, threadID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/threads/"+escape(threadID), token, nil, nil)
}

// ListMessages returns the thread's messages in server order.
func (c *Client) ListMessages(ctx context.Context, token, threadID string) ([]model.Message, error) {
	messages := []model.Message{}
	if err := c.doJSON(ctx, http.MethodGet, "/chat/"+escape(threadID)+"/messages", token, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CountMessages returns the number of messages in a thread.
func (c *Client) CountMessages(ctx context.Context, token, threadID string) (int, error) {
	var resp CountResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chat/"+escape(threadID)+"/messages/count", token, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// SendMessage submits a user message and blocks until the assistant reply is ready.
func (c *Client) SendMessage(ctx context.Context, token, threadID, text string) (*model.ChatResponse, error) {
	req := &SendMessageRequest{Message: text}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var resp model.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/"+escape(threadID)+"/message", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMessage deletes a single message.
func (c *Client) DeleteMessage(ctx context.Context, token, messageID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chat/messages/"+escape(messageID), token, nil, nil)
}
