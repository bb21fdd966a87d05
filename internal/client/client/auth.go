package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Auth defines the authentication operations
type Auth interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
}

type authClient struct {
	client *BaseClient
}

func NewAuthClient(client *BaseClient) Auth {
	return &authClient{client: client}
}

func (c *authClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	resp, err := c.client.Post(ctx, loginPath, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.LoginResponse](resp)
}

func (c *authClient) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	resp, err := c.client.Post(ctx, registerPath, req)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

// Logout revokes the refresh token on the server.
func (c *authClient) Logout(ctx context.Context) error {
	resp, err := c.client.Post(ctx, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func (c *authClient) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.client.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User](resp)
}
