package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/model"
)

// Login exchanges credentials for an access token. Any 4xx is reported as ErrAuth
// with the server's reason attached.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, &tok); err != nil {
		var statusErr *app_errors.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %w", app_errors.ErrAuth, err)
		}
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response carried no access token", app_errors.ErrAuth)
	}
	return &tok, nil
}

// CurrentUser returns the identity behind the token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
