package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/model"
)

// AllowedDocumentExtensions are the file types the backend indexes.
var AllowedDocumentExtensions = []string{".pdf", ".docx"}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	users := []model.User{}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates an account and returns it as stored by the server.
func (c *Client) CreateUser(ctx context.Context, token string, req *CreateUserRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/admin/users", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes an account.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+escape(userID), token, nil, nil)
}

// ToggleUserStatus activates or deactivates an account.
func (c *Client) ToggleUserStatus(ctx context.Context, token, userID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/admin/users/"+escape(userID)+"/toggle-status", token, nil, nil)
}

// UserChatHistory returns all threads of a user with their messages embedded.
func (c *Client) UserChatHistory(ctx context.Context, token, userID string) ([]model.ThreadHistory, error) {
	history := []model.ThreadHistory{}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users/"+escape(userID)+"/chat-history", token, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListDocuments returns the indexed documents.
func (c *Client) ListDocuments(ctx context.Context, token string) ([]model.Document, error) {
	docs := []model.Document{}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/documents", token, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes a document and its chunks from the index.
func (c *Client) DeleteDocument(ctx context.Context, token, docID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/documents/"+escape(docID), token, nil, nil)
}

// UploadDocument sends the file at path as the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, token, path string) (*model.Document, error) {
	if err := CheckDocumentPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(path))))
	header.Set("Content-Type", mimetype.Detect(data).String())
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("could not create multipart part: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("could not write multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("could not finish multipart body: %w", err)
	}

	var doc model.Document
	if err := c.do(ctx, http.MethodPost, "/admin/documents/upload", token, &body, w.FormDataContentType(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CheckDocumentPath rejects files the backend would refuse to index.
func CheckDocumentPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: please select a file", app_errors.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedDocumentExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: only PDF (.pdf) and Word (.docx) files are allowed", app_errors.ErrValidation)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
