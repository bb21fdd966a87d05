package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Notifications defines the notification inbox operations
type Notifications interface {
	List(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type notificationsClient struct {
	client *BaseClient
}

func NewNotificationsClient(client *BaseClient) Notifications {
	return &notificationsClient{client: client}
}

func (c *notificationsClient) List(ctx context.Context) ([]models.Notification, error) {
	resp, err := c.client.Get(ctx, "/notifications")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Notification](resp)
}

func (c *notificationsClient) MarkRead(ctx context.Context, id string) error {
	resp, err := c.client.Patch(ctx, resourcePath("notifications", id, "read"), nil)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func (c *notificationsClient) MarkAllRead(ctx context.Context) error {
	resp, err := c.client.Patch(ctx, "/notifications/read-all", nil)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func (c *notificationsClient) Delete(ctx context.Context, id string) error {
	resp, err := c.client.Delete(ctx, resourcePath("notifications", id))
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}
