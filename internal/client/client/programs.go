package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Programs defines the support program operations
type Programs interface {
	List(ctx context.Context) ([]models.Program, error)
	Get(ctx context.Context, id string) (*models.Program, error)
	Enrolled(ctx context.Context) ([]models.Program, error)
	Enroll(ctx context.Context, id string) error
	CancelEnrollment(ctx context.Context, id string) error
	Create(ctx context.Context, req models.ProgramRequest) (*models.Program, error)
	Update(ctx context.Context, id string, req models.ProgramRequest) (*models.Program, error)
}

type programsClient struct {
	client *BaseClient
}

func NewProgramsClient(client *BaseClient) Programs {
	return &programsClient{client: client}
}

func (c *programsClient) List(ctx context.Context) ([]models.Program, error) {
	resp, err := c.client.Get(ctx, "/programs")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Program](resp)
}

func (c *programsClient) Get(ctx context.Context, id string) (*models.Program, error) {
	resp, err := c.client.Get(ctx, resourcePath("programs", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Program](resp)
}

func (c *programsClient) Enrolled(ctx context.Context) ([]models.Program, error) {
	resp, err := c.client.Get(ctx, "/programs/enrolled")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Program](resp)
}

func (c *programsClient) Enroll(ctx context.Context, id string) error {
	resp, err := c.client.Post(ctx, resourcePath("programs", id, "enroll"), nil)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func (c *programsClient) CancelEnrollment(ctx context.Context, id string) error {
	resp, err := c.client.Delete(ctx, resourcePath("programs", id, "enroll"))
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func (c *programsClient) Create(ctx context.Context, req models.ProgramRequest) (*models.Program, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.client.Post(ctx, "/programs", req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Program](resp)
}

func (c *programsClient) Update(ctx context.Context, id string, req models.ProgramRequest) (*models.Program, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.client.Put(ctx, resourcePath("programs", id), req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Program](resp)
}
