package model

import "strings"

// DefaultThreadTitle is shown for threads the server returned without a title.
const DefaultThreadTitle = "New Chat"

// Thread is a persisted conversation container. The client only ever holds a
// read-through copy of it.
type Thread struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	OwnerUserID string    `json:"owner_user_id,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// DisplayTitle returns the title, or the placeholder when the server sent none.
func (t Thread) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return DefaultThreadTitle
	}
	return t.Title
}

// HeaderTitle is the label for the active thread header. It falls back to a short
// form of the ID when the title is missing.
func (t Thread) HeaderTitle() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	id := t.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "Chat ID: " + id + "..."
}

// MessageRole is the author of a message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// RetrievalRef points at the document chunk an assistant answer was grounded on.
type RetrievalRef struct {
	DocID    string  `json:"doc_id"`
	Filename string  `json:"filename"`
	Page     int     `json:"page"`
	ChunkID  string  `json:"chunk_id"`
	Score    float64 `json:"score"`
}

// Message stores a single message in a thread.
type Message struct {
	ID            string         `json:"id,omitempty"` // Server-assigned; empty for optimistic copies.
	ThreadID      string         `json:"thread_id,omitempty"`
	Role          MessageRole    `json:"role"`
	Content       string         `json:"content"`
	CreatedAt     Timestamp      `json:"created_at"`
	RetrievalRefs []RetrievalRef `json:"retrieval_refs,omitempty"`
	ClientID      string         `json:"-"` // Set only on optimistic copies.
}

// Optimistic reports whether the message was appended locally and not yet
// replaced by server data.
func (m Message) Optimistic() bool {
	return m.ID == "" && m.ClientID != ""
}

// ChatResponse is the reply to a sent message. UserMessage is the persisted echo of
// the submitted message when the backend includes it.
type ChatResponse struct {
	Message       string         `json:"message"`
	RetrievalRefs []RetrievalRef `json:"retrieval_refs,omitempty"`
	UserMessage   *Message       `json:"user_message,omitempty"`
}

// ThreadHistory is a thread with its messages embedded, as returned by the admin
// chat-history endpoint.
type ThreadHistory struct {
	Thread
	Messages []Message `json:"messages"`
}

// Document is an uploaded knowledge-base document.
type Document struct {
	ID        string    `json:"id"`
	DocID     string    `json:"doc_id,omitempty"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	PageCount int       `json:"page_count"`
	CreatedAt Timestamp `json:"created_at"`
}
