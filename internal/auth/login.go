package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bitfighters/launcher/internal/apperr"
)

const (
	// LoginErrorMessage is shown for transport and decoding failures.
	LoginErrorMessage = "login error"
	// InvalidCredentialsMessage is shown when the server rejects the login.
	// It does not say which of username or password was wrong.
	InvalidCredentialsMessage = "invalid username or password"
)

// ErrInvalidCredentials is the cause of every rejected login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the account record returned by a successful login.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	HighestScore int    `json:"highest_score"`
	CreatedAt    string `json:"created_at"`
}

type loginRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// Login authenticates username/password. Failures are apperr.Error values of
// kind transport, deserialization, or credential.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	const op = "auth.login"

	status, data, err := c.post(ctx, loginRequest{Action: "login", Username: username, Password: password})
	if err != nil {
		c.log.Warn("login request failed", "error", err)
		return nil, apperr.Wrap(apperr.KindTransport, op, LoginErrorMessage, err)
	}
	if !isSuccess(status) {
		c.log.Warn("login rejected by server", "status", status)
		return nil, apperr.Wrap(apperr.KindTransport, op, LoginErrorMessage, fmt.Errorf("server returned status %d", status))
	}

	if err := validateLoginResponse(data); err != nil {
		c.log.Warn("malformed login response", "error", err)
		return nil, apperr.Wrap(apperr.KindDeserialization, op, LoginErrorMessage, err)
	}
	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, apperr.Wrap(apperr.KindDeserialization, op, LoginErrorMessage, err)
	}

	if !resp.Success || resp.User == nil {
		c.log.Info("login refused", "username", username, "server_message", resp.Message)
		return nil, apperr.Wrap(apperr.KindCredential, op, InvalidCredentialsMessage,
			fmt.Errorf("%w: %s", ErrInvalidCredentials, resp.Message))
	}
	return resp.User, nil
}
