package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/model"
	"ragchat/client/internal/repository"
)

// Login exchanges credentials for a token, persists it and resolves the identity
// behind it. On failure the client stays unauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	tok, err := c.backend.Login(ctx, &backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		c.alert("Login failed", err)
		return model.Session{}, err
	}

	if err := c.state.Set(ctx, repository.KeyAuthToken, tok.AccessToken); err != nil {
		return model.Session{}, fmt.Errorf("could not persist auth token: %w", err)
	}

	user, source := c.resolveIdentity(ctx, tok.AccessToken, email)

	c.mu.Lock()
	c.resetLocked()
	c.session = model.Session{Token: tok.AccessToken, User: user, RoleSource: source}
	s := c.sessionLocked()
	c.mu.Unlock()

	slog.Debug("Logged in", "email", user.Email, "role", user.Role, "role_source", source)
	return s, nil
}

// resolveIdentity asks the backend who owns the token. When that fails it probes an
// admin-only endpoint and guesses the role from the outcome.
func (c *Client) resolveIdentity(ctx context.Context, token, email string) (*model.User, model.RoleSource) {
	user, err := c.backend.CurrentUser(ctx, token)
	if err == nil {
		return user, model.RoleSourceIdentity
	}
	slog.Warn("Identity lookup failed, probing admin access", "error", err)

	role := model.RoleUser
	if _, probeErr := c.backend.ListUsers(ctx, token); probeErr == nil {
		role = model.RoleAdmin
	}
	return &model.User{Email: email, Role: role, IsActive: true}, model.RoleSourceProbe
}

// Restore revalidates the persisted token. It reports whether a session was
// restored. An invalid or unverifiable token is discarded silently; only local
// storage failures are returned.
func (c *Client) Restore(ctx context.Context) (bool, error) {
	tok, err := c.state.Get(ctx, repository.KeyAuthToken)
	if errors.Is(err, repository.ErrNotFound) {
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read auth token: %w", err)
	}

	user, err := c.backend.CurrentUser(ctx, tok)
	if err != nil {
		slog.Debug("Stored session rejected, discarding token", "error", err)
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		if err := c.state.Delete(ctx, repository.KeyAuthToken); err != nil {
			return false, fmt.Errorf("could not discard auth token: %w", err)
		}
		return false, nil
	}

	c.mu.Lock()
	c.resetLocked()
	c.session = model.Session{Token: tok, User: user, RoleSource: model.RoleSourceIdentity}
	c.mu.Unlock()

	slog.Debug("Session restored", "email", user.Email, "role", user.Role)
	return true, nil
}

// Logout forgets the session everywhere. The in-memory state is always cleared; the
// error only reports a failure to remove the persisted token.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()

	if err := c.state.Delete(ctx, repository.KeyAuthToken); err != nil {
		return fmt.Errorf("could not remove auth token: %w", err)
	}
	slog.Debug("Logged out")
	return nil
}
