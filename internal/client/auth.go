package client

import (
	"context"
	"errors"
	"net/http"

	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &res); err != nil {
		return nil, withFallback(err, "An error occurred during registration")
	}
	if res.Token == "" {
		return nil, exceptions.Network("registration response carried no token", nil)
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var res model.AuthResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return nil, withFallback(err, exceptions.ErrInvalidCredentials.Message)
	}
	if res.Token == "" {
		return nil, exceptions.Network("login response carried no token", nil)
	}
	return &res, nil
}

// Profile returns the user the token in ctx belongs to.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// withFallback swaps the generic status text for a friendlier message when
// the store did not send one.
func withFallback(err error, message string) error {
	var appErr *exceptions.Exception
	if !errors.As(err, &appErr) || appErr.Kind == exceptions.KindNetwork {
		return err
	}
	if appErr.Message == "" || appErr.Message == lowerStatusText(appErr.StatusCode) {
		cp := *appErr
		cp.Message = message
		return &cp
	}
	return err
}
