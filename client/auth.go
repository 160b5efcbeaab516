package client

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. It is an unauthenticated call; on failure
// the returned error carries the server's detail message, or a generic
// network-error message when the request never completed.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	body, err := json.Marshal(registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user User
	if err := c.send(req, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The login endpoint is a
// password-grant style form, so credentials go form-urlencoded rather than
// as JSON. Login success is defined solely by token acquisition: the token
// is persisted first, then the current profile is fetched and cached
// best-effort, and a profile-fetch failure is logged and swallowed rather
// than failing the login. On failure nothing is stored.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token tokenResponse
	if err := c.send(req, &token, false); err != nil {
		return "", err
	}

	if err := c.session.SaveToken(ctx, token.AccessToken); err != nil {
		return "", err
	}

	if user, err := c.CurrentUser(ctx); err != nil {
		c.log.WarnContext(ctx, "profile fetch after login failed", slog.Any("error", err))
	} else if err := c.session.SaveUser(ctx, user); err != nil {
		c.log.WarnContext(ctx, "failed to cache user profile", slog.Any("error", err))
	}

	return token.AccessToken, nil
}

// CurrentUser fetches the authenticated account's profile. Without a token
// it fails immediately with ErrUnauthenticated and makes no network call.
// A 401 clears the session as a side effect before the error is returned.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if token, ok := c.session.Token(ctx); !ok || token == "" {
		return nil, ErrUnauthenticated
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.send(req, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session. Purely local; the server holds no session
// state to revoke.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}
