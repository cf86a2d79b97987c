package interfaces

import (
	"context"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/model"
)

//go:generate mockery --name=Backend --structname=MockBackend --filename=Backend.go --output=mocks --outpkg=mocks --with-expecter=false
//go:generate mockery --name=Prompter --structname=MockPrompter --filename=Prompter.go --output=mocks --outpkg=mocks --with-expecter=false

// This file defines the seams between the client controller and the outside world.
// The service layer depends on these interfaces instead of the concrete HTTP client
// and terminal prompts, so any front end or a test can drive it.

// Backend defines the contract for the chat backend's REST API.
type Backend interface {
	Login(ctx context.Context, req *backend.LoginRequest) (*backend.TokenResponse, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)

	ListThreads(ctx context.Context, token string) ([]model.Thread, error)
	CreateThread(ctx context.Context, token string) (*model.Thread, error)
	RenameThread(ctx context.Context, token, threadID, title string) error
	DeleteThread(ctx context.Context, token, threadID string) error

	ListMessages(ctx context.Context, token, threadID string) ([]model.Message, error)
	CountMessages(ctx context.Context, token, threadID string) (int, error)
	SendMessage(ctx context.Context, token, threadID, text string) (*model.ChatResponse, error)
	DeleteMessage(ctx context.Context, token, messageID string) error

	ListUsers(ctx context.Context, token string) ([]model.User, error)
	CreateUser(ctx context.Context, token string, req *backend.CreateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, token, userID string) error
	ToggleUserStatus(ctx context.Context, token, userID string) error
	UserChatHistory(ctx context.Context, token, userID string) ([]model.ThreadHistory, error)

	ListDocuments(ctx context.Context, token string) ([]model.Document, error)
	UploadDocument(ctx context.Context, token, path string) (*model.Document, error)
	DeleteDocument(ctx context.Context, token, docID string) error
}

// Prompter is how the controller talks back to the person at the keyboard.
// Implementations may block; they are never called with controller state locked.
type Prompter interface {
	// Confirm asks a yes/no question and reports whether the answer was yes.
	Confirm(message string) bool
	// Alert reports a failure that the user should see.
	Alert(message string)
}

var _ Backend = (*backend.Client)(nil)
