package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Users defines the user management operations
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type usersClient struct {
	client *BaseClient
}

func NewUsersClient(client *BaseClient) Users {
	return &usersClient{client: client}
}

func (c *usersClient) List(ctx context.Context) ([]models.User, error) {
	resp, err := c.client.Get(ctx, "/users")
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](resp)
}

func (c *usersClient) Get(ctx context.Context, id string) (*models.User, error) {
	resp, err := c.client.Get(ctx, resourcePath("users", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User](resp)
}

func (c *usersClient) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	resp, err := c.client.Put(ctx, resourcePath("users", id), req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User](resp)
}

func (c *usersClient) Delete(ctx context.Context, id string) error {
	resp, err := c.client.Delete(ctx, resourcePath("users", id))
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}
