package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Parents defines the operations of a parent account over its children
type Parents interface {
	Children(ctx context.Context) ([]models.Child, error)
	ChildAppointments(ctx context.Context, childID string) ([]models.Appointment, error)
	ChildSurveyResults(ctx context.Context, childID string) ([]models.SurveyResult, error)
}

type parentsClient struct {
	client *BaseClient
}

func NewParentsClient(client *BaseClient) Parents {
	return &parentsClient{client: client}
}

func (c *parentsClient) Children(ctx context.Context) ([]models.Child, error) {
	resp, err := c.client.Get(ctx, "/parents/children")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Child](resp)
}

func (c *parentsClient) ChildAppointments(ctx context.Context, childID string) ([]models.Appointment, error) {
	resp, err := c.client.Get(ctx, resourcePath("parents", "children", childID, "appointments"))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Appointment](resp)
}

func (c *parentsClient) ChildSurveyResults(ctx context.Context, childID string) ([]models.SurveyResult, error) {
	resp, err := c.client.Get(ctx, resourcePath("parents", "children", childID, "survey-results"))
	if err != nil {
		return nil, err
	}
	return decodeList[models.SurveyResult](resp)
}
