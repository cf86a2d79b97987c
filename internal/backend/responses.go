package backend

import (
	"bytes"
	"encoding/json"
	"strings"
)

// This file contains the DTOs exchanged with the backend that have no counterpart
// in the model package, and the helper that reads the backend's error body.

// ErrorResponse is the backend's error body: {"detail": "..."}. The detail is a
// plain string for handled errors and a list of objects for request validation
// failures, so it is kept raw.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the reply to a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RenameThreadRequest is the body of PATCH /threads/{id}.
type RenameThreadRequest struct {
	Title string `json:"title" validate:"required"`
}

// SendMessageRequest is the body of POST /chat/{id}/message.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

// CountResponse is the reply of GET /chat/{id}/messages/count.
type CountResponse struct {
	Count int `json:"count"`
}

// parseDetail returns the most useful human-readable text from an error body.
func parseDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Detail) == 0 {
		return truncate(string(body), 200)
	}

	var detail string
	if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
		return detail
	}

	// Validation errors: [{"loc": [...], "msg": "...", "type": "..."}].
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(errResp.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return string(errResp.Detail)
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
