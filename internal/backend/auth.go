package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the upstream's answer to a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login authenticates against POST /auth/login. On success the upstream
// also sets a session cookie on the shared jar. Callers should follow a
// successful login with CurrentUser to refresh the signed-in record.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &result); err != nil {
		return LoginResult{}, fmt.Errorf("backend.Login: %w", err)
	}
	return result, nil
}

// Logout invalidates the upstream session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("backend.Logout: %w", err)
	}
	return nil
}

// changePasswordRequest is the PATCH /auth/change-password body.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := changePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := c.do(ctx, http.MethodPatch, "/auth/change-password", body, nil); err != nil {
		return fmt.Errorf("backend.ChangePassword: %w", err)
	}
	return nil
}

// CurrentUser fetches the record of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("backend.CurrentUser: %w", err)
	}
	return user, nil
}

// AuthMessage translates an auth-flow error into the user-facing message
// for that HTTP status. Unlike CRUD flows, which share one generic failure
// message, auth distinguishes statuses.
func AuthMessage(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return "Please fill in every field correctly."
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == http.StatusBadRequest:
			return "The request could not be processed. Check your input and try again."
		case statusErr.Code == http.StatusUnauthorized:
			return "Incorrect email or password."
		case statusErr.Code == http.StatusUnprocessableEntity:
			return "Please fill in every field correctly."
		case statusErr.Code == http.StatusTooManyRequests:
			return "Too many attempts. Please wait a moment and try again."
		case statusErr.Code >= 500 && statusErr.Code <= 503:
			return "The server is unavailable right now. Please try again later."
		}
	}
	return "Something went wrong. Please try again."
}
