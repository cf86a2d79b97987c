package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"ragchat/client/internal/backend"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/model"
)

// previewRunes is how much of a message the chat-history view shows.
const previewRunes = 150

// ErrAdminRequired is returned, without contacting the backend, when a non-admin
// session calls an admin operation.
var ErrAdminRequired = fmt.Errorf("%w: admin role required", app_errors.ErrPermission)

// AdminService manages users and knowledge-base documents. It shares the session
// and the admin view with the Client it was created from. There are no optimistic
// updates here: every mutation re-fetches the affected list.
type AdminService struct {
	client *Client
}

// NewAdminService creates an AdminService bound to client's session.
func NewAdminService(client *Client) *AdminService {
	return &AdminService{client: client}
}

// authorize returns the admin's token or alerts and fails.
func (s *AdminService) authorize() (string, error) {
	sess := s.client.Session()
	if !sess.Authenticated() || !sess.IsAdmin() {
		s.client.prompt().Alert("Access denied: Admin role required")
		return "", ErrAdminRequired
	}
	return sess.Token, nil
}

// Users returns the last fetched user list.
func (s *AdminService) Users() []model.User {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	return slices.Clone(s.client.users)
}

// Documents returns the last fetched document list.
func (s *AdminService) Documents() []model.Document {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	return slices.Clone(s.client.documents)
}

// LoadUsers fetches the user list into the admin view.
func (s *AdminService) LoadUsers(ctx context.Context) ([]model.User, error) {
	token, err := s.authorize()
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, token)
}

func (s *AdminService) loadUsers(ctx context.Context, token string) ([]model.User, error) {
	users, err := s.client.backend.ListUsers(ctx, token)
	if err != nil {
		slog.Error("Failed to load users", "error", err)
		s.client.alert("Failed to load users", err)
		return nil, fmt.Errorf("could not load users: %w", err)
	}
	s.client.mu.Lock()
	s.client.users = users
	s.client.mu.Unlock()
	return slices.Clone(users), nil
}

// CreateUser creates a regular user account.
func (s *AdminService) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	token, err := s.authorize()
	if err != nil {
		return model.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.client.prompt().Alert("Please fill in all fields")
		return model.User{}, fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}

	user, err := s.client.backend.CreateUser(ctx, token, &backend.CreateUserRequest{
		Email:    email,
		Password: password,
		Role:     string(model.RoleUser),
	})
	if err != nil {
		slog.Error("Failed to create user", "email", email, "error", err)
		s.client.alert("Failed to create user", err)
		return model.User{}, fmt.Errorf("could not create user: %w", err)
	}
	slog.Debug("User created", "user_id", user.ID, "email", user.Email)

	if _, err := s.loadUsers(ctx, token); err != nil {
		return *user, err
	}
	return *user, nil
}

// ToggleUserStatus flips a user between active and inactive.
func (s *AdminService) ToggleUserStatus(ctx context.Context, userID string) error {
	token, err := s.authorize()
	if err != nil {
		return err
	}
	if err := s.client.backend.ToggleUserStatus(ctx, token, userID); err != nil {
		slog.Error("Failed to update user status", "user_id", userID, "error", err)
		s.client.alert("Failed to update user status", err)
		return fmt.Errorf("could not update user status: %w", err)
	}
	_, err = s.loadUsers(ctx, token)
	return err
}

// DeleteUser deletes a user after the admin confirms. It reports whether the user
// was deleted.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) (bool, error) {
	token, err := s.authorize()
	if err != nil {
		return false, err
	}
	if !s.client.confirm("Are you sure you want to delete this user?") {
		return false, nil
	}
	if err := s.client.backend.DeleteUser(ctx, token, userID); err != nil {
		slog.Error("Failed to delete user", "user_id", userID, "error", err)
		s.client.alert("Failed to delete user", err)
		return false, fmt.Errorf("could not delete user: %w", err)
	}
	slog.Debug("User deleted", "user_id", userID)
	_, err = s.loadUsers(ctx, token)
	return true, err
}

// UserChatHistory returns every thread of a user with its messages.
func (s *AdminService) UserChatHistory(ctx context.Context, userID string) ([]model.ThreadHistory, error) {
	token, err := s.authorize()
	if err != nil {
		return nil, err
	}
	history, err := s.client.backend.UserChatHistory(ctx, token, userID)
	if err != nil {
		slog.Error("Failed to load chat history", "user_id", userID, "error", err)
		s.client.alert("Failed to load chat history", err)
		return nil, fmt.Errorf("could not load chat history: %w", err)
	}
	return history, nil
}

// LoadDocuments fetches the document list into the admin view.
func (s *AdminService) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	token, err := s.authorize()
	if err != nil {
		return nil, err
	}
	return s.loadDocuments(ctx, token)
}

func (s *AdminService) loadDocuments(ctx context.Context, token string) ([]model.Document, error) {
	docs, err := s.client.backend.ListDocuments(ctx, token)
	if err != nil {
		slog.Error("Failed to load documents", "error", err)
		s.client.alert("Failed to load documents", err)
		return nil, fmt.Errorf("could not load documents: %w", err)
	}
	s.client.mu.Lock()
	s.client.documents = docs
	s.client.mu.Unlock()
	return slices.Clone(docs), nil
}

// UploadDocument uploads a .pdf or .docx file to the knowledge base.
func (s *AdminService) UploadDocument(ctx context.Context, path string) (model.Document, error) {
	token, err := s.authorize()
	if err != nil {
		return model.Document{}, err
	}
	if err := backend.CheckDocumentPath(path); err != nil {
		s.client.alert("Failed to upload document", err)
		return model.Document{}, err
	}

	doc, err := s.client.backend.UploadDocument(ctx, token, path)
	if err != nil {
		slog.Error("Failed to upload document", "path", path, "error", err)
		s.client.alert("Failed to upload document", err)
		return model.Document{}, fmt.Errorf("could not upload document: %w", err)
	}
	slog.Debug("Document uploaded", "doc_id", doc.ID, "filename", doc.Filename)

	if _, err := s.loadDocuments(ctx, token); err != nil {
		return *doc, err
	}
	return *doc, nil
}

// DeleteDocument deletes a document after the admin confirms. It reports whether
// the document was deleted.
func (s *AdminService) DeleteDocument(ctx context.Context, docID string) (bool, error) {
	token, err := s.authorize()
	if err != nil {
		return false, err
	}
	if !s.client.confirm("Are you sure you want to delete this document?") {
		return false, nil
	}
	if err := s.client.backend.DeleteDocument(ctx, token, docID); err != nil {
		slog.Error("Failed to delete document", "doc_id", docID, "error", err)
		s.client.alert("Failed to delete document", err)
		return false, fmt.Errorf("could not delete document: %w", err)
	}
	slog.Debug("Document deleted", "doc_id", docID)
	_, err = s.loadDocuments(ctx, token)
	return true, err
}

// Preview shortens message content for the chat-history view.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes]) + "..."
}
